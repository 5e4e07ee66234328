package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
)

// settingsRepository keeps the single external API settings row (id = 1).
type settingsRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *settingsRepository) GetSettings(ctx context.Context) (models.ExternalAPISettings, error) {
	var settings models.ExternalAPISettings

	err := r.db.conn(ctx).QueryRowContext(ctx, getSettings).Scan(&settings.BaseURL, &settings.APIKey, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExternalAPISettings{}, ErrSettingsNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingsRepository.GetSettings").Msg("failed to read settings")
		return models.ExternalAPISettings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return settings, nil
}

// SaveSettings upserts the row; the last write wins.
func (r *settingsRepository) SaveSettings(ctx context.Context, settings models.ExternalAPISettings) (models.ExternalAPISettings, error) {
	var saved models.ExternalAPISettings

	err := r.db.conn(ctx).QueryRowContext(ctx, saveSettings, settings.BaseURL, settings.APIKey).Scan(&saved.BaseURL, &saved.APIKey, &saved.UpdatedAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingsRepository.SaveSettings").Msg("failed to save settings")
		return models.ExternalAPISettings{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return saved, nil
}
