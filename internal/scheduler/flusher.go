package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// DefaultFlushInterval is used when the configured interval is zero.
const DefaultFlushInterval = 30 * time.Second

// Flushable is a store whose saves can fall behind and be retried.
type Flushable interface {
	Dirty() bool
	Flush(ctx context.Context) error
}

// Flusher retries failed saves of the library in the background.
type Flusher struct {
	store         Flushable
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewFlusher creates a flusher. manualTrigger may be nil; when set, a send
// on it forces an immediate attempt.
func NewFlusher(
	store Flushable,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Flusher {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}

	return &Flusher{
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic flush loop.
func (f *Flusher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f.Run(ctx)
			case <-f.manualTrigger:
				f.logger.Info("manual flush triggered")
				f.Run(ctx)
			case <-f.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the loop. Pending changes are not saved; call Run for a last
// attempt.
func (f *Flusher) Stop() {
	close(f.stopCh)
}

// Run saves the library if it is dirty and reports whether the store is
// clean afterwards.
func (f *Flusher) Run(ctx context.Context) bool {
	if !f.store.Dirty() {
		f.logger.Debug("library clean, nothing to flush")
		return true
	}

	if err := f.store.Flush(ctx); err != nil {
		f.logger.Error("failed to flush library",
			logger.Duration("next_retry_in", f.interval),
			logger.Error(err))
		return false
	}
	return true
}
