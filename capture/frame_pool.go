package capture

import (
	"image"
	"sync"
)

// Reusable frame pool to reduce heap churn from per-cycle RGBA backing
// slices. The underlying screenshot library still allocates its own image;
// we copy those pixels into a pooled buffer so only one allocation per
// cycle remains and its lifetime ends with the cycle. If a consumer never
// recycles, behavior degrades gracefully to plain allocation.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns a reusable RGBA image sized to rect. The returned
// Pix length exactly matches rect area * 4 and Stride is width*4.
func acquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		img = &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	} else {
		img.Stride = w * 4
		img.Rect = rect
		img.Pix = img.Pix[:needed]
	}
	return img
}

// RecycleFrame returns the frame's buffer to the pool for reuse. The frame
// must no longer be accessed by the caller after invoking RecycleFrame.
func RecycleFrame(f Frame) {
	if f.Image == nil || f.Image.Pix == nil {
		return
	}
	framePool.Put(f.Image)
}
