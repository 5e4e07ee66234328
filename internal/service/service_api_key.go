package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/store"
	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/internal/validators"
	"github.com/MKhiriev/go-uid-panel/models"
)

const (
	// APIKeyPrefix starts every integration key so leaked keys are easy to
	// recognize.
	APIKeyPrefix = "gup_"

	apiKeyDisplayLength = 12
)

// apiKeyService issues and resolves integration API keys. Only the HMAC of a
// key is stored; lookups hash the presented key with the same secret.
type apiKeyService struct {
	keys  store.APIKeyRepository
	users store.UserRepository

	hasher    utils.KeyHasher
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

func NewAPIKeyService(storages *store.Storages, cfg config.App, logger *logger.Logger) APIKeyService {
	return &apiKeyService{
		keys:      storages.APIKeyRepository,
		users:     storages.UserRepository,
		hasher:    utils.NewKeyHasher(cfg.APIKeyHashKey),
		validator: validators.NewRequestValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

// Create issues a key for req.UserID. The plaintext is part of the result
// and cannot be recovered later.
func (a *apiKeyService) Create(ctx context.Context, actor models.Actor, req models.CreateAPIKeyRequest) (models.CreatedAPIKey, error) {
	if !actor.IsOwner() {
		return models.CreatedAPIKey{}, ErrForbidden
	}
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.CreatedAPIKey{}, validationError(err)
	}
	for _, id := range req.AllowedPlans {
		if _, err := PlanByID(id); err != nil {
			return models.CreatedAPIKey{}, fmt.Errorf("%w: %q", err, id)
		}
	}

	if _, err := a.users.GetUser(ctx, req.UserID); err != nil {
		return models.CreatedAPIKey{}, mapStoreError(err)
	}

	plaintext := APIKeyPrefix + utils.RandomToken()
	key, err := a.keys.CreateAPIKey(ctx, models.APIKey{
		UserID:       req.UserID,
		Name:         req.Name,
		KeyPrefix:    plaintext[:apiKeyDisplayLength],
		KeyHash:      a.hasher.Sum(plaintext),
		MaxUIDs:      req.MaxUIDs,
		AllowedPlans: req.AllowedPlans,
		IsActive:     true,
	})
	if err != nil {
		return models.CreatedAPIKey{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Int64("key_id", key.ID).Int64("user_id", key.UserID).Msg("api key created")
	return models.CreatedAPIKey{APIKey: key, Key: plaintext}, nil
}

func (a *apiKeyService) List(ctx context.Context, actor models.Actor) ([]models.APIKey, error) {
	if !actor.IsOwner() {
		return nil, ErrForbidden
	}

	keys, err := a.keys.ListAPIKeys(ctx, 0)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return keys, nil
}

func (a *apiKeyService) Delete(ctx context.Context, actor models.Actor, keyID int64) error {
	if !actor.IsOwner() {
		return ErrForbidden
	}

	return mapStoreError(a.keys.DeleteAPIKey(ctx, keyID))
}

// Authenticate implements APIKeyService. Unknown, revoked and malformed keys
// all yield ErrInvalidAPIKey.
func (a *apiKeyService) Authenticate(ctx context.Context, plaintext string) (models.APIKeyScope, models.Actor, error) {
	log := logger.FromContext(ctx)

	if !strings.HasPrefix(plaintext, APIKeyPrefix) {
		return models.APIKeyScope{}, models.Actor{}, ErrInvalidAPIKey
	}

	key, err := a.keys.FindAPIKeyByHash(ctx, a.hasher.Sum(plaintext))
	if err != nil {
		if errors.Is(err, store.ErrAPIKeyNotFound) {
			return models.APIKeyScope{}, models.Actor{}, ErrInvalidAPIKey
		}
		return models.APIKeyScope{}, models.Actor{}, fmt.Errorf("looking up api key: %w", err)
	}
	if !key.IsActive {
		return models.APIKeyScope{}, models.Actor{}, ErrInvalidAPIKey
	}

	user, err := a.users.GetUser(ctx, key.UserID)
	if err != nil {
		return models.APIKeyScope{}, models.Actor{}, mapStoreError(err)
	}
	if !user.IsActive {
		return models.APIKeyScope{}, models.Actor{}, ErrUserSuspended
	}

	if err = a.keys.TouchAPIKey(ctx, key.ID, a.now()); err != nil {
		log.Warn().Err(err).Int64("key_id", key.ID).Msg("failed to record api key usage")
	}

	return key.Scope(), user.Actor(), nil
}
