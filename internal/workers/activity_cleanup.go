// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/rs/zerolog"
)

// ActivityCleanupWorker periodically archives and purges activity entries
// older than the retention period. A failed purge is logged and retried on
// the next tick; the worker itself only stops with its context.
type ActivityCleanupWorker struct {
	purger        ActivityPurger
	interval      time.Duration
	retentionDays int
	logger        *logger.Logger
}

func NewActivityCleanupWorker(purger ActivityPurger, interval time.Duration, retentionDays int, log *logger.Logger) *ActivityCleanupWorker {
	l := log.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "activity_cleanup")
	})

	return &ActivityCleanupWorker{
		purger:        purger,
		interval:      interval,
		retentionDays: retentionDays,
		logger:        l,
	}
}

func (w *ActivityCleanupWorker) Run(ctx context.Context) error {
	w.logger.Info().
		Dur("interval", w.interval).
		Int("retention_days", w.retentionDays).
		Msg("activity cleanup worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("activity cleanup worker stopped")
			return nil
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ActivityCleanupWorker) runOnce(ctx context.Context) {
	res, err := w.purger.Purge(w.logger.WithContext(ctx), w.retentionDays)
	if err != nil {
		w.logger.Err(err).Str("func", "*ActivityCleanupWorker.runOnce").Msg("activity purge failed")
		return
	}

	w.logger.Info().
		Int64("deleted", res.Deleted).
		Str("archive_object", res.ArchiveObject).
		Msg("activity purge finished")
}
