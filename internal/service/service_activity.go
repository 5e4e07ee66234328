package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/store"
	"github.com/MKhiriev/go-uid-panel/internal/validators"
	"github.com/MKhiriev/go-uid-panel/models"
)

const (
	DefaultActivityLimit   = 50
	MaxActivityLimit       = 500
	DefaultActivityDaysOld = 2
)

type activityService struct {
	tx       store.Transactor
	activity store.ActivityRepository
	archive  store.ActivityArchive

	now func() time.Time

	logger *logger.Logger
}

func NewActivityService(storages *store.Storages, logger *logger.Logger) ActivityService {
	return &activityService{
		tx:       storages.Transactor,
		activity: storages.ActivityRepository,
		archive:  storages.ActivityArchive,
		now:      time.Now,
		logger:   logger,
	}
}

// List returns the newest entries first. The owner sees every user's
// activity, everybody else only their own.
func (a *activityService) List(ctx context.Context, actor models.Actor, limit int) ([]models.ActivityEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}

	filter := models.ActivityFilter{Limit: uint64(limit)}
	if !actor.IsOwner() {
		filter.UserID = actor.ID
	}

	entries, err := a.activity.ListActivity(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return entries, nil
}

// Cleanup archives and purges entries older than daysOld days and records
// the purge itself. A zero daysOld uses the default retention.
func (a *activityService) Cleanup(ctx context.Context, actor models.Actor, daysOld int) (models.CleanupActivityResponse, error) {
	if !actor.IsOwner() {
		return models.CleanupActivityResponse{}, ErrForbidden
	}
	if daysOld == 0 {
		daysOld = DefaultActivityDaysOld
	}
	if daysOld < 0 {
		return models.CleanupActivityResponse{}, validationError(fmt.Errorf("%s: %w", validators.FieldDaysOld, validators.ErrInvalidDaysOld))
	}

	var res models.CleanupActivityResponse
	err := a.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		if res, err = a.purge(ctx, daysOld); err != nil {
			return err
		}

		_, err = a.activity.AppendActivity(ctx, models.ActivityEntry{
			UserID:  actor.ID,
			Action:  models.ActionActivityCleanup,
			Details: fmt.Sprintf("Deleted %d activity entries older than %d days", res.Deleted, daysOld),
		})
		return err
	})
	if err != nil {
		return models.CleanupActivityResponse{}, mapStoreError(err)
	}

	return res, nil
}

// Purge is Cleanup without an actor, for the scheduled worker. Nothing is
// appended to the log.
func (a *activityService) Purge(ctx context.Context, daysOld int) (models.CleanupActivityResponse, error) {
	if daysOld < 1 {
		return models.CleanupActivityResponse{}, validationError(fmt.Errorf("%s: %w", validators.FieldDaysOld, validators.ErrInvalidDaysOld))
	}
	return a.purge(ctx, daysOld)
}

// purge archives the entries older than the cutoff and deletes them. If the
// archive cannot be written nothing is deleted.
func (a *activityService) purge(ctx context.Context, daysOld int) (models.CleanupActivityResponse, error) {
	log := logger.FromContext(ctx)
	cutoff := a.now().Add(-time.Duration(daysOld) * 24 * time.Hour)

	entries, err := a.activity.ActivityOlderThan(ctx, cutoff)
	if err != nil {
		return models.CleanupActivityResponse{}, err
	}

	object, err := a.archive.Archive(ctx, entries)
	if err != nil {
		log.Err(err).Int("entries", len(entries)).Msg("activity archive failed, nothing purged")
		return models.CleanupActivityResponse{}, err
	}

	deleted, err := a.activity.PurgeActivityOlderThan(ctx, cutoff)
	if err != nil {
		return models.CleanupActivityResponse{}, err
	}

	log.Info().Int64("deleted", deleted).Str("archive_object", object).Time("cutoff", cutoff).Msg("activity purged")
	return models.CleanupActivityResponse{Deleted: deleted, ArchiveObject: object}, nil
}
