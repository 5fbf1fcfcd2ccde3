package detect

import "testing"

func maskFrom(w, h int, set [][2]int) *Mask {
	m := &Mask{W: w, H: h, Pix: make([]uint8, w*h)}
	for _, p := range set {
		m.Pix[p[1]*w+p[0]] = 0xFF
	}
	return m
}

func TestComponents_SeparatesDistantGroups(t *testing.T) {
	m := maskFrom(10, 10, [][2]int{
		{1, 1}, {2, 1}, {3, 1},
		{7, 8}, {8, 8},
	})
	comps := components(m)
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if comps[0].Area() != 3 || comps[1].Area() != 2 {
		t.Fatalf("unexpected areas: %d, %d", comps[0].Area(), comps[1].Area())
	}
}

func TestComponents_DiagonalPixelsConnect(t *testing.T) {
	// 8-connectivity: a diagonal staircase is one component.
	m := maskFrom(6, 6, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}})
	comps := components(m)
	if len(comps) != 1 {
		t.Fatalf("expected 1 component, got %d", len(comps))
	}
	if comps[0].Area() != 4 {
		t.Fatalf("expected area 4, got %d", comps[0].Area())
	}
}

func TestComponents_EmptyMask(t *testing.T) {
	m := maskFrom(5, 5, nil)
	if comps := components(m); len(comps) != 0 {
		t.Fatalf("expected no components, got %d", len(comps))
	}
}

func TestComponents_DeterministicOrder(t *testing.T) {
	set := [][2]int{{4, 4}, {4, 5}, {0, 0}, {1, 0}, {8, 2}, {8, 3}}
	a := components(maskFrom(10, 10, set))
	b := components(maskFrom(10, 10, set))
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3 components, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Bounds != b[i].Bounds {
			t.Fatalf("component order differs between runs at %d: %v vs %v", i, a[i].Bounds, b[i].Bounds)
		}
	}
	// Row-major first-pixel order: (0,0) group first, then (8,2), then (4,4).
	if a[0].Bounds.Min.X != 0 || a[1].Bounds.Min.X != 8 || a[2].Bounds.Min.X != 4 {
		t.Fatalf("unexpected scan order: %v %v %v", a[0].Bounds, a[1].Bounds, a[2].Bounds)
	}
}
