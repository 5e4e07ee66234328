// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that runs every
// configured worker until the application context is cancelled.
package workers

import (
	"context"

	"github.com/MKhiriev/go-uid-panel/models"
)

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is cancelled or the worker fails.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// ActivityPurger is the part of the activity service the cleanup worker
// needs.
type ActivityPurger interface {
	Purge(ctx context.Context, daysOld int) (models.CleanupActivityResponse, error)
}
