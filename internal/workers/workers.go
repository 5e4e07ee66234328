package workers

import (
	"context"

	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/service"
	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. Every worker is opt-in, so
// the result may be empty.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.ActivityCleanupInterval > 0 {
		w.workers = append(w.workers, NewActivityCleanupWorker(
			services.ActivityService,
			cfg.ActivityCleanupInterval,
			cfg.ActivityRetentionDays,
			logger,
		))
	}

	return w
}

// Len reports how many workers are enabled.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker in its own goroutine and waits for all of them.
// The first failure cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}
