package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// UIDStatus is the stored lifecycle status of a UID record.
type UIDStatus string

const (
	UIDStatusActive  UIDStatus = "active"
	UIDStatusExpired UIDStatus = "expired"
	UIDStatusDeleted UIDStatus = "deleted"
)

// Valid reports whether s is one of the known statuses.
func (s UIDStatus) Valid() bool {
	switch s {
	case UIDStatusActive, UIDStatusExpired, UIDStatusDeleted:
		return true
	}
	return false
}

// UIDRecord is one externally provisioned bypass credential.
//
// The Value field mirrors the value known to the external bypass service;
// it is only written after the corresponding external call succeeded.
type UIDRecord struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	// APIKeyID is set when the UID was created through the integration API.
	APIKeyID *int64 `json:"api_key_id,omitempty"`

	Value  string `json:"uid"`
	Region string `json:"region"`

	// Duration is the total purchased lifetime in hours, including renewals.
	Duration int `json:"duration"`

	// Cost is the server-computed price charged at creation.
	Cost decimal.Decimal `json:"cost"`

	Status    UIDStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MarshalJSON renders Cost with exactly two decimal places.
func (r UIDRecord) MarshalJSON() ([]byte, error) {
	type alias UIDRecord
	return json.Marshal(struct {
		alias
		Cost string `json:"cost"`
	}{alias(r), r.Cost.StringFixed(2)})
}

// EffectiveStatus returns the status as seen at now: an active record whose
// expiry has passed reads as expired.
func (r UIDRecord) EffectiveStatus(now time.Time) UIDStatus {
	if r.Status == UIDStatusActive && !r.ExpiresAt.After(now) {
		return UIDStatusExpired
	}
	return r.Status
}

// WithEffectiveStatus returns a copy of r whose Status is the effective one.
func (r UIDRecord) WithEffectiveStatus(now time.Time) UIDRecord {
	r.Status = r.EffectiveStatus(now)
	return r
}

// TableName returns the name of the database table
// associated with the UIDRecord model.
func (r UIDRecord) TableName() string {
	return "uid_records"
}

// UIDFilter narrows UID record listings. Zero values mean "any".
type UIDFilter struct {
	UserID   int64
	APIKeyID int64
	Status   UIDStatus
	Limit    uint64
	Offset   uint64
}

// UIDListing is one row of the merged owner-wide listing. Source is "local"
// for records in the ledger and "external" for UIDs only the external
// service knows about.
type UIDListing struct {
	UIDRecord
	Source string `json:"source"`
}

// MarshalJSON keeps Source next to the flattened record fields.
func (l UIDListing) MarshalJSON() ([]byte, error) {
	type alias UIDRecord
	return json.Marshal(struct {
		alias
		Cost   string `json:"cost"`
		Source string `json:"source"`
	}{alias(l.UIDRecord), l.Cost.StringFixed(2), l.Source})
}
