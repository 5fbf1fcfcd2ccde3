package geometry

import "image"

// Extend extrapolates seg along its direction vector in both directions and
// clips the resulting infinite line to bounds. It returns false for
// degenerate (zero direction) segments and for lines that miss the
// rectangle entirely; callers drop those rather than treating them as
// errors.
func Extend(seg Segment, bounds image.Rectangle) (ExtendedLine, bool) {
	dx, dy := seg.Direction()
	if dx == 0 && dy == 0 {
		return ExtendedLine{}, false
	}

	// Liang-Barsky on the parametric line p(t) = P1 + t*(dx,dy) with t
	// unbounded in both directions.
	xmin, ymin := float64(bounds.Min.X), float64(bounds.Min.Y)
	xmax, ymax := float64(bounds.Max.X), float64(bounds.Max.Y)

	tmin, tmax := -inf, inf
	if !clipAxis(seg.P1.X, dx, xmin, xmax, &tmin, &tmax) {
		return ExtendedLine{}, false
	}
	if !clipAxis(seg.P1.Y, dy, ymin, ymax, &tmin, &tmax) {
		return ExtendedLine{}, false
	}
	if tmin > tmax {
		return ExtendedLine{}, false
	}

	out := ExtendedLine{
		P1: Point{X: seg.P1.X + tmin*dx, Y: seg.P1.Y + tmin*dy},
		P2: Point{X: seg.P1.X + tmax*dx, Y: seg.P1.Y + tmax*dy},
	}
	out.P1 = clampPoint(out.P1, xmin, ymin, xmax, ymax)
	out.P2 = clampPoint(out.P2, xmin, ymin, xmax, ymax)
	return out, true
}

const inf = 1e300

// clipAxis narrows [tmin,tmax] so that p+t*d stays within [lo,hi]. Returns
// false when the line runs parallel to the axis outside the slab.
func clipAxis(p, d, lo, hi float64, tmin, tmax *float64) bool {
	if d == 0 {
		return p >= lo && p <= hi
	}
	t0 := (lo - p) / d
	t1 := (hi - p) / d
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 > *tmin {
		*tmin = t0
	}
	if t1 < *tmax {
		*tmax = t1
	}
	return true
}

// clampPoint pins floating point round-off back onto the rectangle.
func clampPoint(p Point, xmin, ymin, xmax, ymax float64) Point {
	if p.X < xmin {
		p.X = xmin
	}
	if p.X > xmax {
		p.X = xmax
	}
	if p.Y < ymin {
		p.Y = ymin
	}
	if p.Y > ymax {
		p.Y = ymax
	}
	return p
}
