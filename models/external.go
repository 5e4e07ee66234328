package models

import "time"

// ExternalUIDRecord is a UID as reported by the external bypass service.
type ExternalUIDRecord struct {
	UID       string    `json:"uid"`
	Status    string    `json:"status"`
	PlanID    string    `json:"plan_id,omitempty"`
	Region    string    `json:"region,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExternalDeleteResult is the data of a successful remote removal.
type ExternalDeleteResult struct {
	UID     string `json:"uid"`
	Deleted bool   `json:"deleted"`
}

// ExternalUIDPage is one page of the remote listing.
type ExternalUIDPage struct {
	Items   []ExternalUIDRecord `json:"items"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
	Total   int                 `json:"total"`
}

// ExternalRenewResult is the data of a successful remote renewal.
type ExternalRenewResult struct {
	UID       string    `json:"uid"`
	ExpiresAt time.Time `json:"expires_at"`
}
