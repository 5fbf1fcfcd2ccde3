package detect

import (
	"math"

	"github.com/JoshuaGerke/Pool-Line-Detector/domain/geometry"
)

// fitSegment fits a line segment to a pixel component using its principal
// axis: the centroid and covariance of the pixel cloud give the dominant
// direction, the extremes of the projection onto that direction give the
// endpoints, and the spread across it gives the thickness.
func fitSegment(comp Component) geometry.Segment {
	n := float64(len(comp.Points))
	if n < 2 {
		p := geometry.Point{}
		if len(comp.Points) == 1 {
			p = geometry.Point{X: float64(comp.Points[0].X), Y: float64(comp.Points[0].Y)}
		}
		return geometry.Segment{P1: p, P2: p, Thickness: 1, Area: len(comp.Points)}
	}

	var cx, cy float64
	for _, p := range comp.Points {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	cx /= n
	cy /= n

	var sxx, sxy, syy float64
	for _, p := range comp.Points {
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	// Principal axis orientation of the 2x2 covariance matrix.
	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	dx, dy := math.Cos(theta), math.Sin(theta)

	tmin, tmax := math.Inf(1), math.Inf(-1)
	umin, umax := math.Inf(1), math.Inf(-1)
	for _, p := range comp.Points {
		px := float64(p.X) - cx
		py := float64(p.Y) - cy
		t := px*dx + py*dy
		u := -px*dy + py*dx
		if t < tmin {
			tmin = t
		}
		if t > tmax {
			tmax = t
		}
		if u < umin {
			umin = u
		}
		if u > umax {
			umax = u
		}
	}

	seg := geometry.Segment{
		P1:        geometry.Point{X: cx + tmin*dx, Y: cy + tmin*dy},
		P2:        geometry.Point{X: cx + tmax*dx, Y: cy + tmax*dy},
		Thickness: umax - umin + 1,
		Area:      len(comp.Points),
	}
	return orient(seg)
}

// orient normalizes endpoint order so equal fits compare equal: P1 is the
// lexicographically smaller endpoint (x, then y).
func orient(s geometry.Segment) geometry.Segment {
	if s.P2.X < s.P1.X || (s.P2.X == s.P1.X && s.P2.Y < s.P1.Y) {
		s.P1, s.P2 = s.P2, s.P1
	}
	return s
}
