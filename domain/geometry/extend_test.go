package geometry

import (
	"image"
	"math"
	"testing"
)

func TestExtend_DiagonalClipsToBoundary(t *testing.T) {
	bounds := image.Rect(0, 0, 800, 600)
	seg := Segment{P1: Point{X: 100, Y: 100}, P2: Point{X: 200, Y: 200}}
	line, ok := Extend(seg, bounds)
	if !ok {
		t.Fatalf("expected extended line")
	}
	// 45 degree diagonal through (100,100): exits at (0,0) and (600,600).
	if math.Abs(line.P1.X) > 0.01 || math.Abs(line.P1.Y) > 0.01 {
		t.Fatalf("unexpected first endpoint %+v", line.P1)
	}
	if math.Abs(line.P2.X-600) > 0.01 || math.Abs(line.P2.Y-600) > 0.01 {
		t.Fatalf("unexpected second endpoint %+v", line.P2)
	}
}

func TestExtend_DegenerateSegmentDropped(t *testing.T) {
	bounds := image.Rect(0, 0, 800, 600)
	seg := Segment{P1: Point{X: 150, Y: 150}, P2: Point{X: 150, Y: 150}}
	if _, ok := Extend(seg, bounds); ok {
		t.Fatalf("zero-length segment must be dropped, not extended")
	}
}

func TestExtend_HorizontalHitsOppositeEdges(t *testing.T) {
	bounds := image.Rect(0, 0, 400, 300)
	seg := Segment{P1: Point{X: 50, Y: 120}, P2: Point{X: 90, Y: 120}}
	line, ok := Extend(seg, bounds)
	if !ok {
		t.Fatalf("expected extended line")
	}
	if line.P1.X != 0 || line.P2.X != 400 {
		t.Fatalf("expected full horizontal span, got %+v -> %+v", line.P1, line.P2)
	}
	if line.P1.Y != 120 || line.P2.Y != 120 {
		t.Fatalf("horizontal line moved vertically: %+v -> %+v", line.P1, line.P2)
	}
}

func TestExtend_VerticalHitsOppositeEdges(t *testing.T) {
	bounds := image.Rect(0, 0, 400, 300)
	seg := Segment{P1: Point{X: 33, Y: 10}, P2: Point{X: 33, Y: 40}}
	line, ok := Extend(seg, bounds)
	if !ok {
		t.Fatalf("expected extended line")
	}
	if line.P1.Y != 0 || line.P2.Y != 300 {
		t.Fatalf("expected full vertical span, got %+v -> %+v", line.P1, line.P2)
	}
}

func TestExtend_EndpointsStayWithinBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 800, 600)
	segs := []Segment{
		{P1: Point{X: 10, Y: 10}, P2: Point{X: 20, Y: 580}},
		{P1: Point{X: 799, Y: 1}, P2: Point{X: 1, Y: 599}},
		{P1: Point{X: 400, Y: 300}, P2: Point{X: 401, Y: 300.5}},
		{P1: Point{X: 0, Y: 0}, P2: Point{X: 800, Y: 600}},
	}
	for i, seg := range segs {
		line, ok := Extend(seg, bounds)
		if !ok {
			t.Fatalf("segment %d: expected extended line", i)
		}
		for _, p := range []Point{line.P1, line.P2} {
			if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
				t.Fatalf("segment %d: endpoint %+v outside bounds", i, p)
			}
		}
	}
}

func TestAngleDiff_Wraps(t *testing.T) {
	// Orientations just either side of horizontal are nearly equal.
	a := Segment{P1: Point{}, P2: Point{X: 100, Y: 1}}.Angle()
	b := Segment{P1: Point{}, P2: Point{X: 100, Y: -1}}.Angle()
	if d := AngleDiff(a, b); d > 0.05 {
		t.Fatalf("expected near-zero orientation difference, got %v", d)
	}
}
