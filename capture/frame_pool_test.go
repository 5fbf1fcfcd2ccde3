package capture

import (
	"image"
	"testing"
)

func TestAcquireFrame_SizesBuffer(t *testing.T) {
	rect := image.Rect(0, 0, 64, 48)
	img := acquireFrame(rect)
	if img.Rect != rect {
		t.Fatalf("unexpected rect %v", img.Rect)
	}
	if len(img.Pix) != 64*48*4 {
		t.Fatalf("unexpected pix length %d", len(img.Pix))
	}
	if img.Stride != 64*4 {
		t.Fatalf("unexpected stride %d", img.Stride)
	}
}

func TestAcquireFrame_ReusesRecycledBuffer(t *testing.T) {
	rect := image.Rect(0, 0, 32, 32)
	first := acquireFrame(rect)
	RecycleFrame(Frame{Image: first})
	second := acquireFrame(image.Rect(0, 0, 16, 16))
	if cap(second.Pix) < 16*16*4 {
		t.Fatalf("recycled buffer too small: %d", cap(second.Pix))
	}
	if len(second.Pix) != 16*16*4 {
		t.Fatalf("pix not resliced to requested size: %d", len(second.Pix))
	}
}

func TestAcquireFrame_DegenerateRect(t *testing.T) {
	img := acquireFrame(image.Rect(0, 0, 0, 0))
	if len(img.Pix) != 0 {
		t.Fatalf("expected empty buffer for empty rect")
	}
}

func TestRecycleFrame_NilSafe(t *testing.T) {
	RecycleFrame(Frame{})
}

func TestCopyPixels_DifferingStride(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}
	// Destination with a wider backing stride than the copy width.
	dst := &image.RGBA{Pix: make([]byte, 2*24), Stride: 24, Rect: image.Rect(0, 0, 4, 2)}
	copyPixels(dst, src)
	for y := 0; y < 2; y++ {
		for i := 0; i < 16; i++ {
			if dst.Pix[y*24+i] != src.Pix[y*16+i] {
				t.Fatalf("pixel mismatch at row %d offset %d", y, i)
			}
		}
	}
}
