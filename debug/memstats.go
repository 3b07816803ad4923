// Package debug logs process memory around heavy operations when
// config.Debug is set.
package debug

import (
	"log/slog"
	"runtime"
)

// MemSnapshot correlates Go heap usage with the native working set.
type MemSnapshot struct {
	Goroutines int
	HeapAlloc  uint64
	HeapInuse  uint64
	HeapSys    uint64
	StackInuse uint64
	NumGC      uint32
	// RSS is zero when HasRSS is false.
	RSS    uint64
	HasRSS bool
}

// Snapshot reads the current memory counters.
func Snapshot() MemSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := MemSnapshot{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		HeapInuse:  ms.HeapInuse,
		HeapSys:    ms.HeapSys,
		StackInuse: ms.StackInuse,
		NumGC:      ms.NumGC,
	}
	s.RSS, s.HasRSS = residentSetSize()
	return s
}

// LogMemory logs a snapshot tagged with event. A nil logger is a no-op.
func LogMemory(logger *slog.Logger, event string) {
	if logger == nil {
		return
	}
	s := Snapshot()
	attrs := []any{
		slog.String("event", event),
		slog.Int("goroutines", s.Goroutines),
		slog.Uint64("heap_alloc", s.HeapAlloc),
		slog.Uint64("heap_inuse", s.HeapInuse),
		slog.Uint64("heap_sys", s.HeapSys),
		slog.Uint64("stack_inuse", s.StackInuse),
		slog.Uint64("num_gc", uint64(s.NumGC)),
	}
	if s.HasRSS {
		attrs = append(attrs, slog.Uint64("rss", s.RSS))
	}
	logger.Debug("memstats", attrs...)
}
