package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/adapter"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/store"
	"github.com/MKhiriev/go-uid-panel/internal/validators"
	"github.com/MKhiriev/go-uid-panel/models"
)

// SettingsProvider serves the external API settings row to the bypass
// client factory. With a zero ttl every call reads the row; otherwise a copy
// is kept for ttl and dropped as soon as the settings are saved.
type SettingsProvider struct {
	repo store.SettingsRepository
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	cached   models.ExternalAPISettings
	cachedAt time.Time
	valid    bool
	// generation is bumped by Invalidate; a read that started in an older
	// generation is not cached.
	generation uint64
}

var _ adapter.SettingsProvider = (*SettingsProvider)(nil)

func NewSettingsProvider(repo store.SettingsRepository, ttl time.Duration) *SettingsProvider {
	return &SettingsProvider{repo: repo, ttl: ttl, now: time.Now}
}

// ExternalAPISettings implements [adapter.SettingsProvider].
func (p *SettingsProvider) ExternalAPISettings(ctx context.Context) (models.ExternalAPISettings, error) {
	var generation uint64
	if p.ttl > 0 {
		p.mu.Lock()
		if p.valid && p.now().Sub(p.cachedAt) < p.ttl {
			settings := p.cached
			p.mu.Unlock()
			return settings, nil
		}
		generation = p.generation
		p.mu.Unlock()
	}

	settings, err := p.repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			return models.ExternalAPISettings{}, adapter.ErrSettingsNotConfigured
		}
		return models.ExternalAPISettings{}, err
	}

	if p.ttl > 0 {
		p.mu.Lock()
		if p.generation == generation {
			p.cached, p.cachedAt, p.valid = settings, p.now(), true
		}
		p.mu.Unlock()
	}

	return settings, nil
}

// Invalidate drops the cached copy.
func (p *SettingsProvider) Invalidate() {
	p.mu.Lock()
	p.valid = false
	p.generation++
	p.mu.Unlock()
}

type settingsService struct {
	repo      store.SettingsRepository
	provider  *SettingsProvider
	validator validators.Validator

	logger *logger.Logger
}

func NewSettingsService(repo store.SettingsRepository, provider *SettingsProvider, logger *logger.Logger) SettingsService {
	return &settingsService{
		repo:      repo,
		provider:  provider,
		validator: validators.NewRequestValidator(),
		logger:    logger,
	}
}

func (s *settingsService) Get(ctx context.Context, actor models.Actor) (models.ExternalAPISettings, error) {
	if !actor.IsOwner() {
		return models.ExternalAPISettings{}, ErrForbidden
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return models.ExternalAPISettings{}, mapStoreError(err)
	}

	return settings.Masked(), nil
}

// Save replaces the settings row. The next bypass client built after Save
// returns uses the new values.
func (s *settingsService) Save(ctx context.Context, actor models.Actor, req models.SaveSettingsRequest) (models.ExternalAPISettings, error) {
	if !actor.IsOwner() {
		return models.ExternalAPISettings{}, ErrForbidden
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.ExternalAPISettings{}, validationError(err)
	}

	saved, err := s.repo.SaveSettings(ctx, models.ExternalAPISettings{
		BaseURL: req.BaseURL,
		APIKey:  req.APIKey,
	})
	if err != nil {
		return models.ExternalAPISettings{}, fmt.Errorf("saving external api settings: %w", err)
	}
	s.provider.Invalidate()

	logger.FromContext(ctx).Info().Int64("actor_id", actor.ID).Str("base_url", saved.BaseURL).Msg("external api settings saved")
	return saved.Masked(), nil
}
