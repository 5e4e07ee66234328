package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/jackc/pgerrcode"
)

// activityRepository is the append-only audit log over "activity_log".
// Entries are never updated; they only leave through PurgeActivityOlderThan.
type activityRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	logger.Debug().Msg("creating activity repository")
	return &activityRepository{
		db:     db,
		logger: logger,
	}
}

func scanActivity(row rowScanner) (models.ActivityEntry, error) {
	var (
		entry  models.ActivityEntry
		action string
	)
	if err := row.Scan(&entry.ID, &entry.UserID, &action, &entry.Details, &entry.CreatedAt); err != nil {
		return models.ActivityEntry{}, err
	}
	entry.Action = models.ActivityAction(action)

	return entry, nil
}

func (r *activityRepository) AppendActivity(ctx context.Context, entry models.ActivityEntry) (models.ActivityEntry, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx, appendActivity, entry.UserID, string(entry.Action), entry.Details)

	saved, err := scanActivity(row)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*activityRepository.AppendActivity").
			Int64("user_id", entry.UserID).
			Str("action", string(entry.Action)).
			Msg("failed to append activity entry")

		if pgCode(err) == pgerrcode.ForeignKeyViolation {
			return models.ActivityEntry{}, ErrUserNotFound
		}
		return models.ActivityEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return saved, nil
}

func (r *activityRepository) ListActivity(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityEntry, error) {
	query, args, err := buildListActivityQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.list(ctx, "*activityRepository.ListActivity", query, args)
}

// ActivityOlderThan returns the entries PurgeActivityOlderThan would delete
// for the same cutoff, oldest first.
func (r *activityRepository) ActivityOlderThan(ctx context.Context, cutoff time.Time) ([]models.ActivityEntry, error) {
	query, args, err := buildActivityOlderThanQuery(cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.list(ctx, "*activityRepository.ActivityOlderThan", query, args)
}

func (r *activityRepository) list(ctx context.Context, funcName, query string, args []any) ([]models.ActivityEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query activity log")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ActivityEntry, 0, 50)
	for rows.Next() {
		entry, scanErr := scanActivity(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan activity entry")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *activityRepository) PurgeActivityOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.conn(ctx).ExecContext(ctx, purgeActivityOlderThan, cutoff)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*activityRepository.PurgeActivityOlderThan").
			Time("cutoff", cutoff).
			Msg("failed to purge activity log")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}
