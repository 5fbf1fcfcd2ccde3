package app

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/JoshuaGerke/Pool-Line-Detector/capture"
	"github.com/JoshuaGerke/Pool-Line-Detector/config"
	"github.com/JoshuaGerke/Pool-Line-Detector/domain/geometry"
)

const statsLogInterval = 5 * time.Second

// State enumerates the controller lifecycle.
type State int

const (
	StateInit State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StateListener is called on each state transition.
type StateListener func(prev, next State)

// FrameSource captures the fixed region as a fresh frame.
type FrameSource interface {
	Capture() (capture.Frame, error)
}

// LineDetector extracts color-matched segments from a frame.
type LineDetector interface {
	Detect(frame *image.RGBA) ([]geometry.Segment, error)
}

// Renderer draws the current line set onto the overlay surface.
type Renderer interface {
	Render(lines []geometry.ExtendedLine) error
	Release()
}

// CycleStats summarises loop behaviour for instrumentation.
type CycleStats struct {
	Cycles   uint64
	Skipped  uint64
	Lines    int
	AvgCycle time.Duration
}

// Controller drives the capture -> detect -> extend -> render pipeline.
// Cycles run sequentially on the scheduler's thread (Tk in production); the
// only cross-goroutine interaction is the atomic stop flag set by the
// cancel hotkey. Each cycle is atomic with respect to the overlay: the
// render call replaces the full visible state or does not happen at all.
type Controller struct {
	cfg      *config.Config
	logger   *slog.Logger
	source   FrameSource
	detector LineDetector
	renderer Renderer
	bounds   image.Rectangle // frame-local, origin (0,0)
	interval time.Duration
	schedule func(delay time.Duration, fn func())
	done     func(err error)

	state         State
	stopRequested atomic.Bool
	listeners     []StateListener

	cycles     uint64
	skipped    uint64
	lastLines  int
	cycleNanos uint64
	lastLog    time.Time
}

// NewController wires the pipeline stages. schedule enqueues fn after delay
// on the loop thread; done is invoked exactly once after the controller
// reaches StateStopped, with the fatal error if any.
func NewController(cfg *config.Config, logger *slog.Logger, source FrameSource, detector LineDetector, renderer Renderer, bounds image.Rectangle, schedule func(time.Duration, func()), done func(error)) *Controller {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	return &Controller{
		cfg:      cfg,
		logger:   logger,
		source:   source,
		detector: detector,
		renderer: renderer,
		bounds:   bounds,
		interval: time.Duration(cfg.IntervalMS) * time.Millisecond,
		schedule: schedule,
		done:     done,
		lastLog:  time.Now(),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// AddListener registers a transition listener. Call before Start.
func (c *Controller) AddListener(l StateListener) {
	c.listeners = append(c.listeners, l)
}

// RequestStop flags cancellation. The flag is observed at the next cycle
// boundary; the in-flight cycle always completes. Safe from any goroutine.
func (c *Controller) RequestStop() { c.stopRequested.Store(true) }

// Start transitions INIT -> RUNNING and schedules the first cycle.
func (c *Controller) Start() {
	if c.state != StateInit {
		return
	}
	c.transition(StateRunning)
	c.schedule(0, c.runCycle)
}

// Stats returns a snapshot of the loop counters.
func (c *Controller) Stats() CycleStats {
	var avg time.Duration
	if c.cycles > 0 {
		avg = time.Duration(c.cycleNanos / c.cycles)
	}
	return CycleStats{Cycles: c.cycles, Skipped: c.skipped, Lines: c.lastLines, AvgCycle: avg}
}

// runCycle executes one full pipeline pass. The cancellation checkpoint is
// evaluated once, here at the cycle boundary.
func (c *Controller) runCycle() {
	if c.state != StateRunning {
		return
	}
	if c.stopRequested.Load() {
		c.finish(nil)
		return
	}
	start := time.Now()

	frame, err := c.source.Capture()
	if err != nil {
		c.finish(fmt.Errorf("cycle %d: %w", c.cycles+1, err))
		return
	}

	segments, err := c.detector.Detect(frame.Image)
	capture.RecycleFrame(frame)
	if err != nil {
		// Recoverable: skip this cycle's render, keep the previous
		// overlay content, try again next interval.
		c.skipped++
		if c.logger != nil {
			c.logger.Warn("cycle skipped", "error", err)
		}
		c.scheduleNext(start)
		return
	}

	lines := make([]geometry.ExtendedLine, 0, len(segments))
	for _, seg := range segments {
		if line, ok := geometry.Extend(seg, c.bounds); ok {
			lines = append(lines, line)
		}
	}

	if err := c.renderer.Render(lines); err != nil {
		c.finish(fmt.Errorf("cycle %d: %w", c.cycles+1, err))
		return
	}

	c.cycles++
	c.lastLines = len(lines)
	c.cycleNanos += uint64(time.Since(start).Nanoseconds())
	if time.Since(c.lastLog) >= statsLogInterval {
		c.logStats()
		c.lastLog = time.Now()
	}
	c.scheduleNext(start)
}

// scheduleNext queues the next cycle. An overrunning cycle starts the next
// one immediately; there is never a backlog because at most one cycle is
// ever scheduled.
func (c *Controller) scheduleNext(start time.Time) {
	delay := c.interval - time.Since(start)
	if delay < 0 {
		delay = 0
	}
	c.schedule(delay, c.runCycle)
}

// finish releases the overlay, transitions to STOPPED and reports the
// terminal error (nil on clean cancellation). Runs on every exit path.
func (c *Controller) finish(err error) {
	if c.renderer != nil {
		c.renderer.Release()
	}
	c.transition(StateStopped)
	if err != nil && c.logger != nil {
		c.logger.Error("pipeline terminated", "error", err)
	}
	if c.done != nil {
		c.done(err)
	}
}

func (c *Controller) transition(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	if c.logger != nil {
		c.logger.Debug("controller state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}

func (c *Controller) logStats() {
	if c.logger == nil {
		return
	}
	stats := c.Stats()
	c.logger.Debug("cycle.stats",
		"cycles", stats.Cycles,
		"skipped", stats.Skipped,
		"lines", stats.Lines,
		"avg_cycle", stats.AvgCycle,
	)
}
