package app

import (
	"image"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/JoshuaGerke/Pool-Line-Detector/capture"
	"github.com/JoshuaGerke/Pool-Line-Detector/config"
	"github.com/JoshuaGerke/Pool-Line-Detector/domain/detect"
	"github.com/JoshuaGerke/Pool-Line-Detector/hotkey"
	"github.com/JoshuaGerke/Pool-Line-Detector/ui/overlay"
)

// app assembles the pipeline around the Tk event loop: the overlay surface,
// the controller scheduled via TclAfter, and the global cancel hotkey.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	controller *Controller
	overlay    *overlay.Overlay
	runErr     error
}

// NewApp builds the composition root. Side effects are deferred to Run.
func NewApp(cfg *config.Config, logger *slog.Logger) *app {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	return &app{cfg: cfg, logger: logger}
}

// Run resolves the capture region, creates the overlay, starts the loop and
// blocks until the cancel key or a fatal pipeline error stops it. The
// returned error is the fatal cause, nil on clean cancellation.
func (a *app) Run() error {
	source := capture.NewSource(a.cfg.Region.Rect())
	region, err := source.Resolve()
	if err != nil {
		return err
	}

	// The implicit Tk root stays hidden; the overlay toplevel is the only
	// visible surface.
	WmWithdraw(App)

	ov, err := overlay.New(region, a.cfg, a.logger)
	if err != nil {
		return err
	}
	a.overlay = ov

	detector := detect.NewDetector(a.cfg, a.logger)
	bounds := image.Rect(0, 0, region.Dx(), region.Dy())
	a.controller = NewController(a.cfg, a.logger, &concealedSource{source: source, overlay: ov}, detector, ov, bounds,
		func(delay time.Duration, fn func()) { TclAfter(delay, fn) },
		func(err error) {
			a.runErr = err
			Destroy(App)
		},
	)

	hotkey.Listen(a.cfg.CancelKey, a.logger, a.controller.RequestStop)

	a.logger.Info("overlay started",
		"region", region.String(),
		"interval_ms", a.cfg.IntervalMS,
		"cancel_key", a.cfg.CancelKey,
	)

	a.controller.Start()
	App.Wait()
	return a.runErr
}

// concealedSource hides the overlay for the duration of each capture so the
// rendered lines are not fed back into the detector.
type concealedSource struct {
	source  *capture.Source
	overlay *overlay.Overlay
}

func (s *concealedSource) Capture() (capture.Frame, error) {
	s.overlay.Conceal()
	defer s.overlay.Reveal()
	return s.source.Capture()
}
