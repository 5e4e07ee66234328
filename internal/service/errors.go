package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-uid-panel/internal/store"
)

// Error taxonomy of the service layer. Handlers map these to status codes;
// every specific error below matches its family with errors.Is.
var (
	ErrValidation = errors.New("validation error")

	ErrInvalidDuration = fmt.Errorf("%w: duration does not match any plan", ErrValidation)
	ErrInvalidPlan     = fmt.Errorf("%w: unknown plan", ErrValidation)
	ErrSameUIDValue    = fmt.Errorf("%w: new uid value equals the current one", ErrValidation)
	ErrUIDDeleted      = fmt.Errorf("%w: uid record is deleted", ErrValidation)
	ErrSelfAction      = fmt.Errorf("%w: owner cannot suspend or delete own account", ErrValidation)

	ErrForbidden       = errors.New("forbidden")
	ErrPlanNotAllowed  = fmt.Errorf("%w: plan is not allowed for this api key", ErrForbidden)
	ErrUIDLimitReached = fmt.Errorf("%w: api key uid limit reached", ErrForbidden)
	ErrUserSuspended   = fmt.Errorf("%w: user is suspended", ErrForbidden)

	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	ErrInvalidSession     = fmt.Errorf("%w: session is expired or invalid", ErrUnauthorized)
	ErrInvalidAPIKey      = fmt.Errorf("%w: invalid api key", ErrUnauthorized)

	ErrInsufficientCredits = errors.New("insufficient credits")

	ErrNotFound         = errors.New("not found")
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrUIDNotFound      = fmt.Errorf("%w: uid", ErrNotFound)
	ErrAPIKeyNotFound   = fmt.Errorf("%w: api key", ErrNotFound)
	ErrSettingsNotFound = fmt.Errorf("%w: external api settings", ErrNotFound)

	ErrUIDAlreadyExists = errors.New("uid already exists")
	ErrUsernameTaken    = errors.New("username already taken")

	// ErrPersistence means the local write failed after the bypass service
	// had already applied the change. The two sides disagree until an
	// operator reconciles them.
	ErrPersistence = errors.New("persistence error")

	ErrPartialRename = errors.New("partial rename")
)

// PartialRenameError reports a rename whose external delete succeeded while
// the free re-create failed: OldValue no longer exists at the bypass service
// and NewValue was never provisioned. The local record still holds OldValue.
type PartialRenameError struct {
	UIDID    int64
	OldValue string
	NewValue string
	Cause    error
}

func (e *PartialRenameError) Error() string {
	return fmt.Sprintf("%s: uid %d: %q was removed externally but %q was not created: %v",
		ErrPartialRename, e.UIDID, e.OldValue, e.NewValue, e.Cause)
}

func (e *PartialRenameError) Unwrap() []error {
	return []error{ErrPartialRename, e.Cause}
}

// storeErrors translates repository sentinels into the service taxonomy.
var storeErrors = []struct {
	from error
	to   error
}{
	{store.ErrUserNotFound, ErrUserNotFound},
	{store.ErrUIDNotFound, ErrUIDNotFound},
	{store.ErrAPIKeyNotFound, ErrAPIKeyNotFound},
	{store.ErrSettingsNotFound, ErrSettingsNotFound},
	{store.ErrInsufficientCredits, ErrInsufficientCredits},
	{store.ErrUIDValueTaken, ErrUIDAlreadyExists},
	{store.ErrUsernameTaken, ErrUsernameTaken},
}

func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range storeErrors {
		if errors.Is(err, m.from) {
			return fmt.Errorf("%w: %w", m.to, err)
		}
	}
	return err
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
