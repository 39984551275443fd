package workers

import (
	"context"
	"time"

	"github.com/nickers/quickshop/internal/logger"
)

// SyncQueue is the slice of the mutation queue the sync workers drive.
type SyncQueue interface {
	// ProbeOnline runs the reachability probe and propagates the verdict.
	ProbeOnline(ctx context.Context) bool
}

// ReachabilityWorker keeps the engine's online verdict fresh by probing the
// backend on a fixed interval.
type ReachabilityWorker struct {
	queue    SyncQueue
	interval time.Duration
	logger   *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func NewReachabilityWorker(queue SyncQueue, interval time.Duration, log *logger.Logger) *ReachabilityWorker {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReachabilityWorker{
		queue:    queue,
		interval: interval,
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (w *ReachabilityWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		online := w.queue.ProbeOnline(w.ctx)
		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
			}

			now := w.queue.ProbeOnline(w.ctx)
			if now != online {
				w.logger.Info().Str("func", "Run").Bool("online", now).Msg("reachability changed")
				online = now
			}
		}
	}()
}

// Stop halts the probe loop.
func (w *ReachabilityWorker) Stop() {
	w.cancel()
}
