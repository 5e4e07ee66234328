package models

import "time"

// APIKey is an integration credential for the external-facing API.
// Only a keyed hash of the key is stored; the plaintext is shown once.
type APIKey struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	KeyPrefix    string     `json:"key_prefix"`
	KeyHash      string     `json:"-"`
	MaxUIDs      *int       `json:"max_uids,omitempty"`
	AllowedPlans []string   `json:"allowed_plans,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
}

// Scope returns the limits the key imposes on its holder.
func (k APIKey) Scope() APIKeyScope {
	return APIKeyScope{
		KeyID:        k.ID,
		UserID:       k.UserID,
		MaxUIDs:      k.MaxUIDs,
		AllowedPlans: k.AllowedPlans,
	}
}

// TableName returns the name of the database table
// associated with the APIKey model.
func (k APIKey) TableName() string {
	return "api_keys"
}
