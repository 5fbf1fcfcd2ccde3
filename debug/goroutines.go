package debug

// Debug goroutine metrics logger. Started only when the debug flag is set.
// Emits goroutine count (runtime metrics) and heap/stack usage at a fixed
// interval to correlate overlay refresh load with memory behaviour.

import (
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StartGoroutineLogger launches a ticker that logs goroutine count and
// stack/heap memory. It is lightweight; disable by running without the
// debug flag.
func StartGoroutineLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for range t.C {
			metrics.Read(samples)
			goroutines := samples[0].Value.Uint64()
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Info("runtime.stats",
				slog.Uint64("goroutines", goroutines),
				slog.Uint64("stack_inuse", uint64(ms.StackInuse)),
				slog.Uint64("heap_alloc", uint64(ms.HeapAlloc)),
				slog.Uint64("heap_sys", uint64(ms.HeapSys)),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}
