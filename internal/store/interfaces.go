package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/shopspring/decimal"
)

// Transactor runs a function inside one database transaction. Repository
// methods called with the context handed to fn take part in it.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// AdjustUserCredits adds delta (which may be negative) to the balance and
	// returns the new balance. It is the final guard against a negative
	// balance and returns ErrInsufficientCredits without touching the row.
	AdjustUserCredits(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error)

	SetUserActive(ctx context.Context, userID int64, active bool) error

	// DeleteUser removes the user; UID records, activity entries and API keys
	// go with it.
	DeleteUser(ctx context.Context, userID int64) error
}

type UIDRepository interface {
	CreateUIDRecord(ctx context.Context, record models.UIDRecord) (models.UIDRecord, error)
	GetUIDRecord(ctx context.Context, id int64) (models.UIDRecord, error)

	// FindActiveUIDByValue returns the non-deleted record holding value.
	FindActiveUIDByValue(ctx context.Context, value string) (models.UIDRecord, error)

	ListUIDRecords(ctx context.Context, filter models.UIDFilter) ([]models.UIDRecord, error)
	CountUIDRecordsByAPIKey(ctx context.Context, apiKeyID int64) (int, error)
	SetUIDStatus(ctx context.Context, id int64, status models.UIDStatus) (models.UIDRecord, error)
	SetUIDValue(ctx context.Context, id int64, value string) (models.UIDRecord, error)

	// ExtendUIDExpiry moves the expiry to expiresAt, adds hours to the
	// accumulated duration and sets status.
	ExtendUIDExpiry(ctx context.Context, id int64, expiresAt time.Time, hours int, status models.UIDStatus) (models.UIDRecord, error)

	DeleteUIDRecord(ctx context.Context, id int64) error
}

type ActivityRepository interface {
	AppendActivity(ctx context.Context, entry models.ActivityEntry) (models.ActivityEntry, error)
	ListActivity(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityEntry, error)
	ActivityOlderThan(ctx context.Context, cutoff time.Time) ([]models.ActivityEntry, error)
	PurgeActivityOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (models.ExternalAPISettings, error)
	SaveSettings(ctx context.Context, settings models.ExternalAPISettings) (models.ExternalAPISettings, error)
}

type APIKeyRepository interface {
	CreateAPIKey(ctx context.Context, key models.APIKey) (models.APIKey, error)
	FindAPIKeyByHash(ctx context.Context, hash string) (models.APIKey, error)

	// ListAPIKeys lists the keys of userID, or every key when userID is 0.
	ListAPIKeys(ctx context.Context, userID int64) ([]models.APIKey, error)

	DeleteAPIKey(ctx context.Context, id int64) error
	TouchAPIKey(ctx context.Context, id int64, usedAt time.Time) error
}

// ActivityArchive stores activity entries outside the database before they
// are purged. Archive returns the name of the written object, or an empty
// name when nothing was written.
type ActivityArchive interface {
	Archive(ctx context.Context, entries []models.ActivityEntry) (string, error)
}
