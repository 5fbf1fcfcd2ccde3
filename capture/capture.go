package capture

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/vova616/screenshot"
)

// ErrCapture marks a failed screen read (disconnected output, invalid
// region). The controller treats it as fatal.
var ErrCapture = errors.New("capture: display unavailable")

// Frame carries one captured raster of the region at a single instant.
// The pixel buffer is owned by the current cycle; pass it back through
// RecycleFrame once detection is done.
type Frame struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Source captures a fixed screen region on demand. The region is resolved
// once at startup and never changes afterwards.
type Source struct {
	region   image.Rectangle
	full     bool
	sequence uint64
}

// NewSource returns a source for the given region. An empty rectangle means
// the full primary screen.
func NewSource(region image.Rectangle) *Source {
	return &Source{region: region, full: region.Empty()}
}

// Resolve determines the concrete capture rectangle in screen coordinates,
// querying the display for the full-screen case. Call once at startup.
func (s *Source) Resolve() (image.Rectangle, error) {
	if !s.full {
		if s.region.Dx() <= 0 || s.region.Dy() <= 0 {
			return image.Rectangle{}, fmt.Errorf("%w: invalid region %v", ErrCapture, s.region)
		}
		return s.region, nil
	}
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: empty screen rect %v", ErrCapture, r)
	}
	s.region = r
	return r, nil
}

// Capture grabs a snapshot of the region. The returned frame's pixels live
// in a pooled buffer; recycle it after detection.
func (s *Source) Capture() (Frame, error) {
	var (
		img *image.RGBA
		err error
	)
	if s.full {
		img, err = screenshot.CaptureScreen()
	} else {
		img, err = screenshot.CaptureRect(s.region)
	}
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	if img == nil {
		return Frame{}, fmt.Errorf("%w: nil capture result", ErrCapture)
	}

	// Copy into a pooled buffer so per-cycle pixel churn reuses memory;
	// the library-allocated image is released to the GC immediately.
	dst := acquireFrame(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
	copyPixels(dst, img)

	s.sequence++
	return Frame{Image: dst, CapturedAt: time.Now(), Sequence: s.sequence}, nil
}

// copyPixels copies src into dst row by row, tolerating differing strides.
func copyPixels(dst, src *image.RGBA) {
	w := dst.Rect.Dx() * 4
	for y := 0; y < dst.Rect.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[y*src.Stride:y*src.Stride+w])
	}
}
