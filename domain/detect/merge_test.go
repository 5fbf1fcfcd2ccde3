package detect

import (
	"math"
	"testing"

	"github.com/JoshuaGerke/Pool-Line-Detector/domain/geometry"
)

func seg(x1, y1, x2, y2 float64) geometry.Segment {
	return geometry.Segment{
		P1:        geometry.Point{X: x1, Y: y1},
		P2:        geometry.Point{X: x2, Y: y2},
		Thickness: 3,
	}
}

const (
	testAngleTol = 5 * math.Pi / 180
	testDistTol  = 12.0
)

func TestMerge_OverlappingCollinearPair(t *testing.T) {
	a := seg(100, 100, 200, 100)
	b := seg(105, 100, 210, 100)
	out := mergeSegments([]geometry.Segment{a, b}, testAngleTol, testDistTol)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged segment, got %d", len(out))
	}
	m := out[0]
	if math.Abs(m.P1.X-100) > 0.01 || math.Abs(m.P2.X-210) > 0.01 || math.Abs(m.P1.Y-100) > 0.01 {
		t.Fatalf("merged span wrong: %+v -> %+v", m.P1, m.P2)
	}
	if m.Length() < a.Length() || m.Length() < b.Length() {
		t.Fatalf("merged length %v shorter than an input", m.Length())
	}
}

func TestMerge_OrderInsensitive(t *testing.T) {
	a := seg(100, 100, 200, 100)
	b := seg(105, 100, 210, 100)
	fwd := mergeSegments([]geometry.Segment{a, b}, testAngleTol, testDistTol)
	rev := mergeSegments([]geometry.Segment{b, a}, testAngleTol, testDistTol)
	if len(fwd) != 1 || len(rev) != 1 {
		t.Fatalf("expected single merged segment both ways: %d, %d", len(fwd), len(rev))
	}
	if math.Abs(fwd[0].P1.X-rev[0].P1.X) > 0.01 || math.Abs(fwd[0].P2.X-rev[0].P2.X) > 0.01 {
		t.Fatalf("merge result depends on input order: %+v vs %+v", fwd[0], rev[0])
	}
}

func TestMerge_AngleOutsideToleranceKeptApart(t *testing.T) {
	a := seg(100, 100, 200, 100)
	b := seg(100, 100, 195, 130) // ~17 degrees off
	out := mergeSegments([]geometry.Segment{a, b}, testAngleTol, testDistTol)
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}
}

func TestMerge_DistantParallelKeptApart(t *testing.T) {
	a := seg(100, 100, 200, 100)
	b := seg(100, 160, 200, 160)
	out := mergeSegments([]geometry.Segment{a, b}, testAngleTol, testDistTol)
	if len(out) != 2 {
		t.Fatalf("parallel segments 60px apart must not merge, got %d", len(out))
	}
}

func TestMerge_GapBelowToleranceBridges(t *testing.T) {
	// Endpoint gap of 8px along the same line, within the 12px tolerance.
	a := seg(100, 100, 150, 100)
	b := seg(158, 100, 220, 100)
	out := mergeSegments([]geometry.Segment{a, b}, testAngleTol, testDistTol)
	if len(out) != 1 {
		t.Fatalf("expected bridge merge, got %d segments", len(out))
	}
	if math.Abs(out[0].P1.X-100) > 0.01 || math.Abs(out[0].P2.X-220) > 0.01 {
		t.Fatalf("bridged span wrong: %+v -> %+v", out[0].P1, out[0].P2)
	}
}

func TestMerge_ChainAbsorbsTransitively(t *testing.T) {
	// c only comes within range once a and b have merged.
	a := seg(100, 100, 200, 100)
	b := seg(150, 100, 260, 100)
	c := seg(266, 100, 320, 100)
	out := mergeSegments([]geometry.Segment{c, a, b}, testAngleTol, testDistTol)
	if len(out) != 1 {
		t.Fatalf("expected transitive merge into one segment, got %d", len(out))
	}
	if math.Abs(out[0].P1.X-100) > 0.01 || math.Abs(out[0].P2.X-320) > 0.01 {
		t.Fatalf("chain span wrong: %+v -> %+v", out[0].P1, out[0].P2)
	}
}
