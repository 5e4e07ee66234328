package service

import (
	"context"

	"github.com/MKhiriev/go-uid-panel/models"
)

// UIDService coordinates the UID lifecycle between the ledger and the
// external bypass service. Every mutation that the bypass service knows
// about is applied there first; the ledger is written only after the
// external call succeeded.
type UIDService interface {
	Create(ctx context.Context, actor models.Actor, req models.CreateUIDRequest) (models.CreateUIDResponse, error)
	CreateWithPlan(ctx context.Context, actor models.Actor, scope models.APIKeyScope, req models.IntegrationAddUIDRequest) (models.CreateUIDResponse, error)

	UpdateValue(ctx context.Context, actor models.Actor, uidID int64, newValue string) (models.UIDRecord, error)
	UpdateStatus(ctx context.Context, actor models.Actor, uidID int64, status models.UIDStatus) (models.UIDRecord, error)

	Delete(ctx context.Context, actor models.Actor, uidID int64) error
	DeleteForAPIKey(ctx context.Context, actor models.Actor, scope models.APIKeyScope, uidValue string) error

	Renew(ctx context.Context, actor models.Actor, scope models.APIKeyScope, uidValue string, days int) (models.RenewResult, error)

	ListForUser(ctx context.Context, actor models.Actor, userID int64) ([]models.UIDRecord, error)
	ListAll(ctx context.Context, actor models.Actor) (models.AllUIDsResponse, error)
	ListForAPIKey(ctx context.Context, scope models.APIKeyScope, page, perPage int, status models.UIDStatus) (models.IntegrationUIDPage, error)
}

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	ParseSession(ctx context.Context, tokenString string) (models.Token, error)

	// ResolveActor reloads the session user and returns the actor it may act
	// as. Suspended or deleted users are rejected.
	ResolveActor(ctx context.Context, token models.Token) (models.Actor, models.User, error)
}

type UserService interface {
	Create(ctx context.Context, actor models.Actor, req models.CreateUserRequest) (models.User, error)
	CreateOwner(ctx context.Context, username, password string) (models.User, error)
	List(ctx context.Context, actor models.Actor) ([]models.User, error)
	Get(ctx context.Context, actor models.Actor, userID int64) (models.User, error)
	AdjustCredits(ctx context.Context, actor models.Actor, userID int64, req models.AdjustCreditsRequest) (models.User, error)
	SetActive(ctx context.Context, actor models.Actor, userID int64, active bool) (models.User, error)
	Delete(ctx context.Context, actor models.Actor, userID int64) error
}

type ActivityService interface {
	List(ctx context.Context, actor models.Actor, limit int) ([]models.ActivityEntry, error)
	Cleanup(ctx context.Context, actor models.Actor, daysOld int) (models.CleanupActivityResponse, error)

	// Purge archives and deletes old entries on behalf of the system.
	Purge(ctx context.Context, daysOld int) (models.CleanupActivityResponse, error)
}

type SettingsService interface {
	// Get returns the settings with the API key masked.
	Get(ctx context.Context, actor models.Actor) (models.ExternalAPISettings, error)
	Save(ctx context.Context, actor models.Actor, req models.SaveSettingsRequest) (models.ExternalAPISettings, error)
}

type APIKeyService interface {
	Create(ctx context.Context, actor models.Actor, req models.CreateAPIKeyRequest) (models.CreatedAPIKey, error)
	List(ctx context.Context, actor models.Actor) ([]models.APIKey, error)
	Delete(ctx context.Context, actor models.Actor, keyID int64) error

	// Authenticate resolves a plaintext key to its scope and to the actor of
	// the user that owns it.
	Authenticate(ctx context.Context, plaintext string) (models.APIKeyScope, models.Actor, error)
}
