package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no user matches the given id or username.
	ErrUserNotFound = errors.New("no user was found")

	// ErrUsernameTaken is returned when a user with the same username already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInsufficientCredits is returned by AdjustUserCredits when applying the
	// delta would leave a negative balance. The balance is left untouched.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrUIDNotFound is returned when no UID record matches the given id or value.
	ErrUIDNotFound = errors.New("uid record was not found")

	// ErrUIDValueTaken is returned when another non-deleted record already
	// holds the UID value.
	ErrUIDValueTaken = errors.New("uid value is already in use")

	// ErrSettingsNotFound is returned while the external API settings row has
	// never been saved.
	ErrSettingsNotFound = errors.New("external api settings were not found")

	// ErrAPIKeyNotFound is returned when no API key matches the given id or hash.
	ErrAPIKeyNotFound = errors.New("api key was not found")

	// ErrArchiveFailed is returned when activity entries could not be written
	// to the archive bucket.
	ErrArchiveFailed = errors.New("failed to archive activity entries")
)

// SQL-level failures, wrapped around the driver error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrExecutingStatement   = errors.New("error executing sql statement")
	ErrScanningRow          = errors.New("error scanning row")
	ErrScanningRows         = errors.New("error scanning rows")
	ErrBeginningTransaction = errors.New("error beginning transaction")
	// ErrCommitingTransaction means the transaction was rolled back.
	ErrCommitingTransaction = errors.New("error committing transaction")
)
