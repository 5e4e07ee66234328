package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/jackc/pgerrcode"
)

// uidRepository is the PostgreSQL-backed implementation of [UIDRepository]
// over the "uid_records" table. Single-field mutations are last-write-wins;
// callers serialize access per record.
type uidRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewUIDRepository(db *DB, logger *logger.Logger) UIDRepository {
	logger.Debug().Msg("creating uid repository")
	return &uidRepository{
		db:     db,
		logger: logger,
	}
}

func scanUIDRecord(row rowScanner) (models.UIDRecord, error) {
	var (
		record   models.UIDRecord
		apiKeyID sql.NullInt64
		status   string
	)

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&apiKeyID,
		&record.Value,
		&record.Region,
		&record.Duration,
		&record.Cost,
		&status,
		&record.CreatedAt,
		&record.ExpiresAt,
	)
	if err != nil {
		return models.UIDRecord{}, err
	}

	if apiKeyID.Valid {
		record.APIKeyID = &apiKeyID.Int64
	}
	record.Status = models.UIDStatus(status)

	return record, nil
}

// uidWriteError maps constraint violations raised by writes to uid_records.
func uidWriteError(err error) error {
	switch pgCode(err) {
	case pgerrcode.UniqueViolation:
		return ErrUIDValueTaken
	case pgerrcode.ForeignKeyViolation:
		if pgConstraint(err) == "uid_records_api_key_id_fkey" {
			return ErrAPIKeyNotFound
		}
		return ErrUserNotFound
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUIDNotFound
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func (r *uidRepository) CreateUIDRecord(ctx context.Context, record models.UIDRecord) (models.UIDRecord, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx, createUIDRecord,
		record.UserID,
		record.APIKeyID,
		record.Value,
		record.Region,
		record.Duration,
		record.Cost,
		string(record.Status),
		record.ExpiresAt,
	)

	created, err := scanUIDRecord(row)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*uidRepository.CreateUIDRecord").
			Int64("user_id", record.UserID).
			Str("uid", record.Value).
			Msg("failed to create uid record")
		return models.UIDRecord{}, uidWriteError(err)
	}

	return created, nil
}

func (r *uidRepository) GetUIDRecord(ctx context.Context, id int64) (models.UIDRecord, error) {
	return r.findOne(ctx, "*uidRepository.GetUIDRecord", getUIDRecord, id)
}

func (r *uidRepository) FindActiveUIDByValue(ctx context.Context, value string) (models.UIDRecord, error) {
	return r.findOne(ctx, "*uidRepository.FindActiveUIDByValue", findActiveUIDByValue, value)
}

func (r *uidRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.UIDRecord, error) {
	record, err := scanUIDRecord(r.db.conn(ctx).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.UIDRecord{}, ErrUIDNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error finding uid record")
		return models.UIDRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

func (r *uidRepository) ListUIDRecords(ctx context.Context, filter models.UIDFilter) ([]models.UIDRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUIDRecordsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*uidRepository.ListUIDRecords").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*uidRepository.ListUIDRecords").
			Int64("user_id", filter.UserID).
			Int64("api_key_id", filter.APIKeyID).
			Msg("failed to list uid records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.UIDRecord, 0, 32)
	for rows.Next() {
		record, scanErr := scanUIDRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*uidRepository.ListUIDRecords").Msg("failed to scan uid record")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *uidRepository) CountUIDRecordsByAPIKey(ctx context.Context, apiKeyID int64) (int, error) {
	var count int
	if err := r.db.conn(ctx).QueryRowContext(ctx, countUIDRecordsByAPIKey, apiKeyID).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*uidRepository.CountUIDRecordsByAPIKey").
			Int64("api_key_id", apiKeyID).
			Msg("failed to count uid records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *uidRepository) SetUIDStatus(ctx context.Context, id int64, status models.UIDStatus) (models.UIDRecord, error) {
	return r.update(ctx, "*uidRepository.SetUIDStatus", setUIDStatus, id, string(status))
}

func (r *uidRepository) SetUIDValue(ctx context.Context, id int64, value string) (models.UIDRecord, error) {
	return r.update(ctx, "*uidRepository.SetUIDValue", setUIDValue, id, value)
}

func (r *uidRepository) ExtendUIDExpiry(ctx context.Context, id int64, expiresAt time.Time, hours int, status models.UIDStatus) (models.UIDRecord, error) {
	return r.update(ctx, "*uidRepository.ExtendUIDExpiry", extendUIDExpiry, id, expiresAt, hours, string(status))
}

func (r *uidRepository) update(ctx context.Context, funcName, query string, args ...any) (models.UIDRecord, error) {
	record, err := scanUIDRecord(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).Str("func", funcName).Any("uid_record_id", args[0]).Msg("failed to update uid record")
		}
		return models.UIDRecord{}, uidWriteError(err)
	}

	return record, nil
}

func (r *uidRepository) DeleteUIDRecord(ctx context.Context, id int64) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, deleteUIDRecord, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*uidRepository.DeleteUIDRecord").Int64("uid_record_id", id).Msg("failed to delete uid record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUIDNotFound
	}

	return nil
}
