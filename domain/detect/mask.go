package detect

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/JoshuaGerke/Pool-Line-Detector/config"
)

// Mask is a binary image produced by color thresholding. Pix holds one byte
// per pixel in row-major order, non-zero meaning "inside the range".
type Mask struct {
	W, H int
	Pix  []uint8
}

// At reports whether the pixel at (x, y) is set. Out-of-bounds reads are
// false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.Pix[y*m.W+x] != 0
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// buildMask thresholds frame against r. The frame must be non-nil with
// positive dimensions; callers validate.
func buildMask(frame *image.RGBA, r config.ColorRange) *Mask {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &Mask{W: w, H: h, Pix: make([]uint8, w*h)}
	hsv := r.Space == config.SpaceHSV
	for y := 0; y < h; y++ {
		row := frame.Pix[(y+b.Min.Y-frame.Rect.Min.Y)*frame.Stride:]
		for x := 0; x < w; x++ {
			i := (x + b.Min.X - frame.Rect.Min.X) * 4
			cr, cg, cb := row[i], row[i+1], row[i+2]
			var in bool
			if hsv {
				in = hsvInRange(cr, cg, cb, r)
			} else {
				in = rgbInRange(cr, cg, cb, r)
			}
			if in {
				m.Pix[y*w+x] = 0xFF
			}
		}
	}
	return m
}

func rgbInRange(r, g, b uint8, cr config.ColorRange) bool {
	return float64(r) >= cr.Lower[0] && float64(r) <= cr.Upper[0] &&
		float64(g) >= cr.Lower[1] && float64(g) <= cr.Upper[1] &&
		float64(b) >= cr.Lower[2] && float64(b) <= cr.Upper[2]
}

func hsvInRange(r, g, b uint8, cr config.ColorRange) bool {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()
	if s < cr.Lower[1] || s > cr.Upper[1] {
		return false
	}
	if v < cr.Lower[2] || v > cr.Upper[2] {
		return false
	}
	lo, hi := cr.Lower[0], cr.Upper[0]
	if lo <= hi {
		return h >= lo && h <= hi
	}
	// Hue interval wrapping through 360/0, e.g. red lo=350 hi=10.
	return h >= lo || h <= hi
}
