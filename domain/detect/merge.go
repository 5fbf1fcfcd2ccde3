package detect

import (
	"math"
	"sort"

	"github.com/JoshuaGerke/Pool-Line-Detector/domain/geometry"
)

// mergeSegments combines near-duplicate segments: two candidates whose
// orientations differ by no more than angleTol (radians) and whose support
// overlaps, or lies within distTol of each other both along and across the
// line, become one segment spanning the union of their projections. The
// merged extent is never shorter than either input.
//
// Longer segments absorb shorter ones; the result is sorted by endpoint
// coordinates so equal input yields identical output.
func mergeSegments(segs []geometry.Segment, angleTol, distTol float64) []geometry.Segment {
	if len(segs) < 2 {
		return segs
	}

	work := make([]geometry.Segment, len(segs))
	copy(work, segs)
	sort.SliceStable(work, func(i, j int) bool { return work[i].Length() > work[j].Length() })

	used := make([]bool, len(work))
	var out []geometry.Segment
	for i := range work {
		if used[i] {
			continue
		}
		used[i] = true
		seed := work[i]
		// Re-scan after every absorption: merging widens the seed's
		// support, which can bring further candidates into range.
		for absorbed := true; absorbed; {
			absorbed = false
			for j := i + 1; j < len(work); j++ {
				if used[j] {
					continue
				}
				if !mergeable(seed, work[j], angleTol, distTol) {
					continue
				}
				seed = union(seed, work[j])
				used[j] = true
				absorbed = true
			}
		}
		out = append(out, seed)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].P1, out[j].P1
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return out[i].P2.X < out[j].P2.X
	})
	return out
}

// mergeable reports whether b duplicates part of a's line.
func mergeable(a, b geometry.Segment, angleTol, distTol float64) bool {
	if geometry.AngleDiff(a.Angle(), b.Angle()) > angleTol {
		return false
	}
	dx, dy := a.Direction()
	l := math.Hypot(dx, dy)
	if l == 0 {
		return false
	}
	dx, dy = dx/l, dy/l

	// Perpendicular offset of both of b's endpoints from a's infinite line.
	if perpDist(a.P1, dx, dy, b.P1) > distTol || perpDist(a.P1, dx, dy, b.P2) > distTol {
		return false
	}

	// Support intervals along a's direction must overlap or nearly touch.
	a0, a1 := interval(a, a.P1, dx, dy)
	b0, b1 := interval(b, a.P1, dx, dy)
	gap := math.Max(a0, b0) - math.Min(a1, b1)
	return gap <= distTol
}

func perpDist(origin geometry.Point, dx, dy float64, p geometry.Point) float64 {
	px := p.X - origin.X
	py := p.Y - origin.Y
	return math.Abs(-px*dy + py*dx)
}

// interval projects s's endpoints onto the axis (origin, d) and returns the
// ordered [min,max] parameter range.
func interval(s geometry.Segment, origin geometry.Point, dx, dy float64) (float64, float64) {
	t0 := (s.P1.X-origin.X)*dx + (s.P1.Y-origin.Y)*dy
	t1 := (s.P2.X-origin.X)*dx + (s.P2.Y-origin.Y)*dy
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1
}

// union spans a and b along a's direction, keeping the greater extent.
func union(a, b geometry.Segment) geometry.Segment {
	dx, dy := a.Direction()
	l := math.Hypot(dx, dy)
	if l == 0 {
		return a
	}
	dx, dy = dx/l, dy/l

	tmin, tmax := math.Inf(1), math.Inf(-1)
	for _, p := range []geometry.Point{a.P1, a.P2, b.P1, b.P2} {
		t := (p.X-a.P1.X)*dx + (p.Y-a.P1.Y)*dy
		if t < tmin {
			tmin = t
		}
		if t > tmax {
			tmax = t
		}
	}
	merged := geometry.Segment{
		P1:        geometry.Point{X: a.P1.X + tmin*dx, Y: a.P1.Y + tmin*dy},
		P2:        geometry.Point{X: a.P1.X + tmax*dx, Y: a.P1.Y + tmax*dy},
		Thickness: math.Max(a.Thickness, b.Thickness),
		Area:      a.Area + b.Area,
	}
	return orient(merged)
}
