package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/jackc/pgerrcode"
)

// apiKeyRepository stores integration API keys. Only the keyed hash of a
// key is persisted; the plaintext never reaches the database.
type apiKeyRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewAPIKeyRepository(db *DB, logger *logger.Logger) APIKeyRepository {
	logger.Debug().Msg("creating api key repository")
	return &apiKeyRepository{
		db:     db,
		logger: logger,
	}
}

func scanAPIKey(row rowScanner) (models.APIKey, error) {
	var (
		key        models.APIKey
		maxUIDs    sql.NullInt64
		plans      []byte
		lastUsedAt sql.NullTime
	)

	err := row.Scan(
		&key.ID,
		&key.UserID,
		&key.Name,
		&key.KeyPrefix,
		&key.KeyHash,
		&maxUIDs,
		&plans,
		&key.IsActive,
		&key.CreatedAt,
		&lastUsedAt,
	)
	if err != nil {
		return models.APIKey{}, err
	}

	if maxUIDs.Valid {
		limit := int(maxUIDs.Int64)
		key.MaxUIDs = &limit
	}
	if len(plans) > 0 {
		if err = json.Unmarshal(plans, &key.AllowedPlans); err != nil {
			return models.APIKey{}, fmt.Errorf("decoding allowed plans: %w", err)
		}
	}
	if lastUsedAt.Valid {
		key.LastUsedAt = &lastUsedAt.Time
	}

	return key, nil
}

// allowedPlansValue encodes the plan whitelist as JSONB; an empty list is NULL.
func allowedPlansValue(plans []string) (any, error) {
	if len(plans) == 0 {
		return nil, nil
	}
	return json.Marshal(plans)
}

func (r *apiKeyRepository) CreateAPIKey(ctx context.Context, key models.APIKey) (models.APIKey, error) {
	log := logger.FromContext(ctx)

	plans, err := allowedPlansValue(key.AllowedPlans)
	if err != nil {
		return models.APIKey{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.conn(ctx).QueryRowContext(ctx, createAPIKey,
		key.UserID,
		key.Name,
		key.KeyPrefix,
		key.KeyHash,
		key.MaxUIDs,
		plans,
		key.IsActive,
	)

	created, err := scanAPIKey(row)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.CreateAPIKey").Int64("user_id", key.UserID).Msg("failed to create api key")

		if pgCode(err) == pgerrcode.ForeignKeyViolation {
			return models.APIKey{}, ErrUserNotFound
		}
		return models.APIKey{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

func (r *apiKeyRepository) FindAPIKeyByHash(ctx context.Context, hash string) (models.APIKey, error) {
	key, err := scanAPIKey(r.db.conn(ctx).QueryRowContext(ctx, findAPIKeyByHash, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return models.APIKey{}, ErrAPIKeyNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*apiKeyRepository.FindAPIKeyByHash").Msg("failed to find api key")
		return models.APIKey{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return key, nil
}

func (r *apiKeyRepository) ListAPIKeys(ctx context.Context, userID int64) ([]models.APIKey, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAPIKeysQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.ListAPIKeys").Int64("user_id", userID).Msg("failed to list api keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]models.APIKey, 0, 8)
	for rows.Next() {
		key, scanErr := scanAPIKey(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*apiKeyRepository.ListAPIKeys").Msg("failed to scan api key")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return keys, nil
}

func (r *apiKeyRepository) DeleteAPIKey(ctx context.Context, id int64) error {
	return r.exec(ctx, "*apiKeyRepository.DeleteAPIKey", deleteAPIKey, id)
}

func (r *apiKeyRepository) TouchAPIKey(ctx context.Context, id int64, usedAt time.Time) error {
	return r.exec(ctx, "*apiKeyRepository.TouchAPIKey", touchAPIKey, id, usedAt)
}

func (r *apiKeyRepository) exec(ctx context.Context, funcName, query string, args ...any) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAPIKeyNotFound
	}

	return nil
}
