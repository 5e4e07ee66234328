package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidUIDValue   = errors.New("uid must be 6 to 12 letters or digits")
	ErrInvalidDuration   = errors.New("duration must be a positive number of hours")
	ErrInvalidStatus     = errors.New("invalid uid status")
	ErrInvalidUsername   = errors.New("username must be 3 to 32 letters, digits, '.', '_' or '-'")
	ErrInvalidPassword   = errors.New("password must be 8 to 72 bytes")
	ErrInvalidAmount     = errors.New("amount must be positive with at most two decimal places")
	ErrNegativeCredits   = errors.New("initial credits must be non-negative with at most two decimal places")
	ErrInvalidOperation  = errors.New("operation must be add or deduct")
	ErrInvalidDays       = errors.New("days must be between 1 and 365")
	ErrInvalidBaseURL    = errors.New("base url must be an absolute http(s) url")
	ErrEmptyAPIKey       = errors.New("api key is required")
	ErrEmptyName         = errors.New("name is required")
	ErrInvalidMaxUIDs    = errors.New("max uids must not be negative")
	ErrEmptyPlanID       = errors.New("plan id is required")
	ErrEmptyCredentials  = errors.New("username and password are required")
	ErrDeleteViaStatus   = errors.New("status cannot be set to deleted, delete the uid instead")
	ErrInvalidRegion     = errors.New("region must be at most 32 letters, digits or '-'")
	ErrInvalidDaysOld    = errors.New("days_old must be at least 1")
	ErrInvalidPagination = errors.New("page and per_page must be positive")
)
