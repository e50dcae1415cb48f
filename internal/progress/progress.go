// Package progress periodically logs done/failed/running/queued site
// counts for the duration of a fetch phase.
package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/epgforge/epgforge/internal/runconfig"
	"github.com/epgforge/epgforge/pkg/format"
)

// Reporter ticks against a live Stats and logs one structured line per
// interval. An interval of zero disables reporting entirely: Start returns
// a no-op stop function without spawning a goroutine.
type Reporter struct {
	stats    *runconfig.Stats
	interval time.Duration
	logger   *slog.Logger
}

// New builds a Reporter for the given interval in seconds.
func New(stats *runconfig.Stats, intervalSec int, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{stats: stats, interval: time.Duration(intervalSec) * time.Second, logger: logger}
}

// Start begins periodic logging and returns a function that stops it. The
// returned function is safe to call once, after the fetch phase completes.
func (r *Reporter) Start(ctx context.Context) (stop func()) {
	if r.interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				r.logOnce()
			}
		}
	}()

	return func() { close(done) }
}

func (r *Reporter) logOnce() {
	s := r.stats.Snapshot()
	r.logger.Info("fetch progress",
		slog.String("done", format.Number(s.Succeeded+s.Failed)),
		slog.String("failed", format.Number(s.Failed)),
		slog.String("running", format.Number(s.Running)),
		slog.String("queued", format.Number(s.Queued)),
		slog.String("elapsed", format.Duration(s.Elapsed)),
	)
}
