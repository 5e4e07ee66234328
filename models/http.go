package models

import "github.com/shopspring/decimal"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Credits  decimal.Decimal `json:"credits"`
}

// CreditOperation selects the direction of a manual credit adjustment.
type CreditOperation string

const (
	CreditOperationAdd    CreditOperation = "add"
	CreditOperationDeduct CreditOperation = "deduct"
)

// AdjustCreditsRequest is the body of PATCH /users/{id}/credits.
type AdjustCreditsRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Operation CreditOperation `json:"operation"`
}

// SetUserActiveRequest is the body of PATCH /users/{id}/status.
type SetUserActiveRequest struct {
	Active bool `json:"active"`
}

// CreateUIDRequest is the body of POST /uids. Any client-supplied cost is
// ignored: the price comes from the plan table.
type CreateUIDRequest struct {
	UserID   int64  `json:"user_id"`
	UIDValue string `json:"uid_value"`
	Duration int    `json:"duration"`
	Region   string `json:"region,omitempty"`
}

// UpdateUIDStatusRequest is the body of PATCH /uids/{id}.
type UpdateUIDStatusRequest struct {
	Status UIDStatus `json:"status"`
}

// UpdateUIDValueRequest is the body of PATCH /uids/{id}/value.
type UpdateUIDValueRequest struct {
	NewUIDValue string `json:"new_uid_value"`
}

// CleanupActivityRequest is the body of POST /activity/cleanup.
type CleanupActivityRequest struct {
	DaysOld int `json:"days_old"`
}

// SaveSettingsRequest is the body of POST /settings.
type SaveSettingsRequest struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// CreateAPIKeyRequest is the body of POST /api-keys.
type CreateAPIKeyRequest struct {
	UserID       int64    `json:"user_id"`
	Name         string   `json:"name"`
	MaxUIDs      *int     `json:"max_uids,omitempty"`
	AllowedPlans []string `json:"allowed_plans,omitempty"`
}

// IntegrationAddUIDRequest is the body of POST /api/v1/add_uid and
// POST /api/v1/add_uid_free (PlanID is ignored for the latter).
type IntegrationAddUIDRequest struct {
	UID    string `json:"uid"`
	PlanID string `json:"plan_id"`
	Region string `json:"region,omitempty"`
}

// IntegrationRemoveUIDRequest is the body of POST /api/v1/remove_uid.
type IntegrationRemoveUIDRequest struct {
	UID string `json:"uid"`
}

// IntegrationRenewUIDRequest is the body of POST /api/v1/renew_uid.
type IntegrationRenewUIDRequest struct {
	UID  string `json:"uid"`
	Days int    `json:"days"`
}
