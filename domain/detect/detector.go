package detect

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/anthonynsimon/bild/blur"

	"github.com/JoshuaGerke/Pool-Line-Detector/config"
	"github.com/JoshuaGerke/Pool-Line-Detector/domain/geometry"
)

// ErrBadFrame marks a malformed or zero-size frame reaching the detector.
// The controller treats it as recoverable and skips the cycle.
var ErrBadFrame = errors.New("detect: bad frame")

// Detector extracts straight line segments matching the configured color
// range from a frame. Not safe for concurrent use; Detect runs from a
// single goroutine per cycle.
type Detector struct {
	cfg      *config.Config
	logger   *slog.Logger
	angleTol float64 // radians
}

// NewDetector constructs a detector from validated configuration.
func NewDetector(cfg *config.Config, logger *slog.Logger) *Detector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	return &Detector{
		cfg:      cfg,
		logger:   logger,
		angleTol: cfg.MergeAngleDeg * math.Pi / 180,
	}
}

// Trace captures the pipeline's intermediate stages for diagnostics.
type Trace struct {
	Mask       *Mask
	Components []Component
	Candidates []geometry.Segment
	Segments   []geometry.Segment
}

// Detect runs the full mask -> contour -> fit -> filter -> merge pipeline.
// An empty mask yields an empty slice and nil error. Output order is
// deterministic for equal input.
func (d *Detector) Detect(frame *image.RGBA) ([]geometry.Segment, error) {
	t, err := d.DetectTrace(frame)
	if err != nil {
		return nil, err
	}
	return t.Segments, nil
}

// DetectTrace is Detect with the intermediate stages exposed, used by the
// single-shot diagnostic dump.
func (d *Detector) DetectTrace(frame *image.RGBA) (*Trace, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil image", ErrBadFrame)
	}
	b := frame.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadFrame, b.Dx(), b.Dy())
	}

	src := frame
	if d.cfg.BlurSigma > 0 {
		src = blur.Gaussian(frame, d.cfg.BlurSigma)
	}

	mask := buildMask(src, d.cfg.LineRange)
	comps := components(mask)

	var backdrop *Mask // built lazily, only when a candidate survives the shape filters
	var candidates []geometry.Segment
	for _, comp := range comps {
		if comp.Area() < d.cfg.MinArea {
			continue
		}
		seg := fitSegment(comp)
		if !d.shapeOK(seg) {
			continue
		}
		if !d.cfg.BackdropRange.Empty() {
			if backdrop == nil {
				backdrop = buildMask(src, d.cfg.BackdropRange)
			}
			if !endpointContrast(seg, backdrop, d.cfg.ProbeRadius) {
				continue
			}
		}
		candidates = append(candidates, seg)
	}

	merged := mergeSegments(candidates, d.angleTol, d.cfg.MergeDistance)
	if d.logger != nil {
		d.logger.Debug("detect.cycle",
			"mask_pixels", mask.Count(),
			"components", len(comps),
			"candidates", len(candidates),
			"segments", len(merged),
		)
	}
	return &Trace{Mask: mask, Components: comps, Candidates: candidates, Segments: merged}, nil
}

// shapeOK applies the length/thickness/aspect filters.
func (d *Detector) shapeOK(seg geometry.Segment) bool {
	length := seg.Length()
	if length < d.cfg.MinLength {
		return false
	}
	if seg.Thickness < d.cfg.MinThickness || seg.Thickness > d.cfg.MaxThickness {
		return false
	}
	return length/math.Max(seg.Thickness, 1) >= d.cfg.MinAspect
}

// endpointContrast probes beyond both segment ends along the line direction
// and passes when at least one end runs into backdrop-colored pixels. Lines
// floating in unrelated content (UI text, reflections) fail this.
func endpointContrast(seg geometry.Segment, backdrop *Mask, radius int) bool {
	dx, dy := seg.Direction()
	l := math.Hypot(dx, dy)
	if l == 0 {
		return true
	}
	dx, dy = dx/l, dy/l
	return probe(backdrop, seg.P1, -dx, -dy, radius) || probe(backdrop, seg.P2, dx, dy, radius)
}

func probe(m *Mask, from geometry.Point, dx, dy float64, radius int) bool {
	for dist := 3; dist < radius; dist++ {
		x := int(from.X + dx*float64(dist))
		y := int(from.Y + dy*float64(dist))
		if m.At(x, y) {
			return true
		}
	}
	return false
}
