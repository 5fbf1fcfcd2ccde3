package geometry

import "math"

// Point is a position in frame coordinates. Float components keep fitted
// endpoints sub-pixel accurate until they are drawn.
type Point struct {
	X, Y float64
}

// Segment is a raw detected line piece defined by two endpoints inside the
// frame rectangle. Values are immutable once produced by the detector.
type Segment struct {
	P1, P2 Point

	// Fit metadata carried along for filtering and diagnostics.
	Thickness float64
	Area      int
}

// Length returns the euclidean distance between the endpoints.
func (s Segment) Length() float64 {
	return math.Hypot(s.P2.X-s.P1.X, s.P2.Y-s.P1.Y)
}

// Direction returns the (unnormalized) direction vector P1->P2.
func (s Segment) Direction() (dx, dy float64) {
	return s.P2.X - s.P1.X, s.P2.Y - s.P1.Y
}

// Angle returns the segment orientation in radians, normalized to [0, pi).
// Orientation has no sense of direction: a segment and its reverse report
// the same angle.
func (s Segment) Angle() float64 {
	dx, dy := s.Direction()
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += math.Pi
	}
	if a >= math.Pi {
		a -= math.Pi
	}
	return a
}

// Midpoint returns the segment center.
func (s Segment) Midpoint() Point {
	return Point{X: (s.P1.X + s.P2.X) / 2, Y: (s.P1.Y + s.P2.Y) / 2}
}

// ExtendedLine is a Segment extrapolated along its direction vector and
// clipped to the frame boundary. Both endpoints lie on or within the frame
// rectangle.
type ExtendedLine struct {
	P1, P2 Point
}

// AngleDiff returns the smallest angle between two orientations in radians,
// in [0, pi/2].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}
