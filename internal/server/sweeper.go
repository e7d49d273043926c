package server

import (
	"time"

	"go.uber.org/zap"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/logging"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/trace"
)

// sweeper prunes expired records on a fixed interval.
type sweeper struct {
	store     *trace.Store
	logger    *logging.Logger
	retention time.Duration
	interval  time.Duration
	stop      chan struct{}
	done      chan struct{}
}

func newSweeper(store *trace.Store, logger *logging.Logger, retention, interval time.Duration) *sweeper {
	return &sweeper{
		store:     store,
		logger:    logger,
		retention: retention,
		interval:  interval,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (w *sweeper) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.done)

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().UnixMilli() - w.retention.Milliseconds()
			if removed := w.store.ClearOlderThan(cutoff); removed > 0 {
				w.logger.Debug("Retention sweep removed records",
					zap.Int("removed", removed),
					zap.Int64("cutoff", cutoff))
			}
		case <-w.stop:
			return
		}
	}
}

// Close stops the sweep loop and waits for it to exit.
func (w *sweeper) Close() {
	close(w.stop)
	<-w.done
}
