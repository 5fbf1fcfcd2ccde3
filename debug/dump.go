package debug

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/JoshuaGerke/Pool-Line-Detector/capture"
	"github.com/JoshuaGerke/Pool-Line-Detector/config"
	"github.com/JoshuaGerke/Pool-Line-Detector/domain/detect"
	"github.com/JoshuaGerke/Pool-Line-Detector/domain/geometry"
)

// Palette for component visualization; cycles when there are more
// components than entries.
var componentColors = []color.NRGBA{
	{R: 0xE6, G: 0x19, B: 0x4B, A: 0xFF},
	{R: 0x3C, G: 0xB4, B: 0x4B, A: 0xFF},
	{R: 0xFF, G: 0xE1, B: 0x19, A: 0xFF},
	{R: 0x43, G: 0x63, B: 0xD8, A: 0xFF},
	{R: 0xF5, G: 0x82, B: 0x31, A: 0xFF},
	{R: 0x91, G: 0x1E, B: 0xB4, A: 0xFF},
	{R: 0x46, G: 0xF0, B: 0xF0, A: 0xFF},
	{R: 0xF0, G: 0x32, B: 0xE6, A: 0xFF},
}

var (
	fitColor      = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	segmentColor  = color.NRGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}
	extendedColor = color.NRGBA{R: 0x00, G: 0xA0, B: 0xFF, A: 0xFF}
)

// Dump captures one frame, runs the detection pipeline once, and writes the
// intermediate images (frame, mask, components, lines) into dir. It is the
// single-shot diagnostic mode; the continuous loop never calls it.
func Dump(cfg *config.Config, logger *slog.Logger, dir string) error {
	source := capture.NewSource(cfg.Region.Rect())
	region, err := source.Resolve()
	if err != nil {
		return err
	}
	frame, err := source.Capture()
	if err != nil {
		return err
	}
	defer capture.RecycleFrame(frame)

	detector := detect.NewDetector(cfg, logger)
	trace, err := detector.DetectTrace(frame.Image)
	if err != nil {
		return err
	}

	if err := imaging.Save(frame.Image, filepath.Join(dir, "dump_frame.png")); err != nil {
		return fmt.Errorf("debug: save frame: %w", err)
	}
	if err := imaging.Save(maskImage(trace.Mask), filepath.Join(dir, "dump_mask.png")); err != nil {
		return fmt.Errorf("debug: save mask: %w", err)
	}
	if err := imaging.Save(componentImage(trace, region), filepath.Join(dir, "dump_contours.png")); err != nil {
		return fmt.Errorf("debug: save contours: %w", err)
	}
	if err := imaging.Save(lineImage(frame.Image, trace, region), filepath.Join(dir, "dump_lines.png")); err != nil {
		return fmt.Errorf("debug: save lines: %w", err)
	}

	logger.Info("diagnostic dump written",
		"dir", dir,
		"mask_pixels", trace.Mask.Count(),
		"components", len(trace.Components),
		"segments", len(trace.Segments),
	)
	return nil
}

// maskImage converts the binary mask to a grayscale image.
func maskImage(m *detect.Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.W, m.H))
	copy(img.Pix, m.Pix)
	return img
}

// componentImage paints every mask component in its own palette color and
// marks the fitted candidate endpoints.
func componentImage(trace *detect.Trace, region image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	for i, comp := range trace.Components {
		c := componentColors[i%len(componentColors)]
		for _, p := range comp.Points {
			img.SetNRGBA(p.X, p.Y, c)
		}
	}
	for _, seg := range trace.Candidates {
		drawMarker(img, seg.P1, color.NRGBA{R: 0xFF, A: 0xFF})
		drawMarker(img, seg.P2, color.NRGBA{B: 0xFF, A: 0xFF})
	}
	return img
}

// lineImage overlays fitted, merged and extended lines on a frame copy.
func lineImage(frame *image.RGBA, trace *detect.Trace, region image.Rectangle) *image.NRGBA {
	img := imaging.Clone(frame)
	bounds := image.Rect(0, 0, region.Dx(), region.Dy())
	for _, seg := range trace.Candidates {
		drawLine(img, seg.P1, seg.P2, fitColor)
	}
	for _, seg := range trace.Segments {
		if line, ok := geometry.Extend(seg, bounds); ok {
			drawLine(img, line.P1, line.P2, extendedColor)
		}
		drawLine(img, seg.P1, seg.P2, segmentColor)
	}
	return img
}

// drawLine rasterizes the segment between two points (Bresenham).
func drawLine(img *image.NRGBA, a, b geometry.Point, c color.NRGBA) {
	x0, y0 := int(a.X+0.5), int(a.Y+0.5)
	x1, y1 := int(b.X+0.5), int(b.Y+0.5)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetNRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawMarker paints a small filled square centered on p.
func drawMarker(img *image.NRGBA, p geometry.Point, c color.NRGBA) {
	cx, cy := int(p.X+0.5), int(p.Y+0.5)
	for y := cy - 2; y <= cy+2; y++ {
		for x := cx - 2; x <= cx+2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
