package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreateUIDResponse is returned by a successful Create. Balance is the
// owning user's credit balance after the debit.
type CreateUIDResponse struct {
	UID     UIDRecord       `json:"uid"`
	Balance decimal.Decimal `json:"balance"`
}

// MarshalJSON renders Balance with exactly two decimal places.
func (r CreateUIDResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UID     UIDRecord `json:"uid"`
		Balance string    `json:"balance"`
	}{r.UID, r.Balance.StringFixed(2)})
}

// AllUIDsResponse is the owner-wide merged listing. ExternalError is set
// when the external listing failed and only local records are shown.
type AllUIDsResponse struct {
	UIDs          []UIDListing `json:"uids"`
	ExternalError string       `json:"external_error,omitempty"`
}

// CleanupActivityResponse reports a purge.
type CleanupActivityResponse struct {
	Deleted       int64  `json:"deleted"`
	ArchiveObject string `json:"archive_object,omitempty"`
}

// CreatedAPIKey is returned once, at creation; Key is the plaintext.
type CreatedAPIKey struct {
	APIKey
	Key string `json:"key"`
}

// RenewResult describes a successful renewal.
type RenewResult struct {
	UID          UIDRecord `json:"uid"`
	OldExpiresAt string    `json:"old_expires_at"`
}

// IntegrationEnvelope is the response body of the external-facing API.
type IntegrationEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// IntegrationUIDPage is the data of GET /api/v1/list_uids.
type IntegrationUIDPage struct {
	Items   []UIDRecord `json:"items"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Total   int         `json:"total"`
}
