package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Role distinguishes the administrative owner from regular dashboard users.
type Role string

const (
	// RoleOwner grants access to user management, settings, API keys and the
	// global activity log.
	RoleOwner Role = "owner"

	// RoleUser may act only on its own credits and UID records.
	RoleUser Role = "user"
)

// User represents a dashboard account holding a credit balance.
// Credits are kept as an exact two-place decimal.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// Credits is the current balance.
	Credits decimal.Decimal `json:"credits"`

	// IsOwner marks the administrative role.
	IsOwner bool `json:"is_owner"`

	// IsActive is false for suspended accounts; suspended users cannot log in.
	IsActive bool `json:"is_active"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON renders Credits with exactly two decimal places.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		alias
		Credits string `json:"credits"`
	}{alias(u), u.Credits.StringFixed(2)})
}

// Role returns the role derived from the owner flag.
func (u User) Role() Role {
	if u.IsOwner {
		return RoleOwner
	}
	return RoleUser
}

// Actor returns the identity the user acts under.
func (u User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role()}
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
