package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-insight/internal/config"
)

// SyncFunc produces a fresh calendar feed.
type SyncFunc func(ctx context.Context) ([]byte, error)

// Worker regenerates the feed of Server every Interval.
type Worker struct {
	Server   *InsightServer
	Sync     SyncFunc
	Interval time.Duration
}

// Run syncs once immediately, then on every tick until ctx is cancelled.
// A failed sync keeps the previous feed.
func (w *Worker) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	interval := w.Interval
	if interval <= 0 {
		interval = time.Duration(config.DefaultRefreshMinutes) * time.Minute
	}

	w.sync(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
			w.sync(ctx)
		}
	}
}

func (w *Worker) sync(ctx context.Context) {
	data, err := w.Sync(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error(config.MsgSyncFailed,
				config.LogKeyComponent, config.CompWorker,
				config.LogKeyError, err,
			)
		}
		return
	}
	w.Server.Update(data)
}
