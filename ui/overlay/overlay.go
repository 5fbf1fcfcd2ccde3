package overlay

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/JoshuaGerke/Pool-Line-Detector/config"
	"github.com/JoshuaGerke/Pool-Line-Detector/domain/geometry"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ErrSurface marks an overlay surface that could not be created or updated.
// The controller treats it as fatal.
var ErrSurface = errors.New("overlay: surface unavailable")

// Color key for full transparency. Anything drawn in this exact color
// disappears, so it must never match the configured line color.
const transparentKey = "#010101"

const windowTitle = "Trajectory Overlay"

// Overlay owns the transparent, click-through, always-on-top surface that
// mirrors the capture region. All methods must run on the Tk event thread.
type Overlay struct {
	logger    *slog.Logger
	win       *ToplevelWidget
	canvas    *CanvasWidget
	region    image.Rectangle
	lineColor string
	lineWidth int
	released  bool
}

// New creates the overlay window positioned and sized to exactly match the
// capture region. Tk errors surface as panics; they are converted into
// ErrSurface here so the caller sees a plain error.
func New(region image.Rectangle, cfg *config.Config, logger *slog.Logger) (o *Overlay, err error) {
	defer func() {
		if r := recover(); r != nil {
			o, err = nil, fmt.Errorf("%w: %v", ErrSurface, r)
		}
	}()
	if region.Dx() <= 0 || region.Dy() <= 0 {
		return nil, fmt.Errorf("%w: invalid region %v", ErrSurface, region)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	win := App.Toplevel(Background(transparentKey))
	win.WmTitle(windowTitle)
	WmOverrideRedirect(win.Window, true)
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", region.Dx(), region.Dy(), region.Min.X, region.Min.Y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-transparentcolor", transparentKey)

	canvas := win.Canvas(Width(region.Dx()), Height(region.Dy()), Background(transparentKey), Highlightthickness(0))
	Pack(canvas)

	o = &Overlay{
		logger:    logger,
		win:       win,
		canvas:    canvas,
		region:    region,
		lineColor: cfg.LineColor,
		lineWidth: cfg.LineWidth,
	}

	// Click-through is applied after the window exists. Best effort: on
	// failure the overlay still renders, it just intercepts clicks.
	if err := enableClickThrough(windowTitle); err != nil && logger != nil {
		logger.Warn("overlay click-through unavailable", "error", err)
	}
	return o, nil
}

// Render replaces the visible content with exactly the given lines. Prior
// drawing is fully cleared first; rendering an empty slice leaves the
// surface completely transparent. Line coordinates are frame-relative and
// map 1:1 onto the canvas.
func (o *Overlay) Render(lines []geometry.ExtendedLine) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSurface, r)
		}
	}()
	if o == nil || o.released || o.canvas == nil {
		return fmt.Errorf("%w: released", ErrSurface)
	}
	o.canvas.Delete("all")
	for _, l := range lines {
		o.canvas.CreateLine(l.P1.X, l.P1.Y, l.P2.X, l.P2.Y,
			Fill(o.lineColor), Width(o.lineWidth), Capstyle("round"))
	}
	return nil
}

// Conceal makes the window fully invisible so a capture of the region does
// not pick up the overlay's own lines. Must be paired with Reveal within
// the same cycle.
func (o *Overlay) Conceal() {
	if o == nil || o.released || o.win == nil {
		return
	}
	func() {
		defer func() { _ = recover() }()
		WmAttributes(o.win.Window, "-alpha", 0)
		Update()
	}()
}

// Reveal restores visibility after Conceal.
func (o *Overlay) Reveal() {
	if o == nil || o.released || o.win == nil {
		return
	}
	func() {
		defer func() { _ = recover() }()
		WmAttributes(o.win.Window, "-alpha", 1)
	}()
}

// Release destroys the overlay window. Safe to call more than once.
func (o *Overlay) Release() {
	if o == nil || o.released {
		return
	}
	o.released = true
	func() {
		defer func() { _ = recover() }()
		Destroy(o.win)
	}()
	o.win, o.canvas = nil, nil
}
