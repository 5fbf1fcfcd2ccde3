package hotkey

import (
	"log/slog"

	hook "github.com/robotn/gohook"
)

// Listen watches the global keyboard hook for the given raw key code and
// invokes onCancel once when it is pressed. The hook runs on its own
// goroutine; onCancel must therefore be safe to call from outside the Tk
// thread (the controller's stop flag is atomic).
func Listen(code uint16, logger *slog.Logger, onCancel func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil && logger != nil {
				logger.Error("hotkey goroutine panic", "error", r)
			}
		}()

		evChan := hook.Start()
		if evChan == nil {
			if logger != nil {
				logger.Error("hotkey hook start failed")
			}
			return
		}
		defer hook.End()

		for ev := range evChan {
			if !Matches(ev, code) {
				continue
			}
			if logger != nil {
				logger.Info("cancel key observed", "rawcode", ev.Rawcode)
			}
			onCancel()
			return
		}
	}()
}

// Matches reports whether ev is a key-down of the given raw code.
func Matches(ev hook.Event, code uint16) bool {
	return ev.Kind == hook.KeyDown && ev.Rawcode == code
}
