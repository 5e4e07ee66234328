package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set of a dashboard session token. Role is
// informational: the session gate reloads the user on every request.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// UserID parses the "sub" claim.
func (c SessionClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session subject %q is not a user id: %w", c.Subject, err)
	}
	return id, nil
}

// Token is a signed session token as carried by the session cookie.
type Token struct {
	Claims       SessionClaims `json:"-"`
	SignedString string        `json:"-"`
	UserID       int64         `json:"-"`
}

// Expires returns the "exp" claim, or the zero time when it is absent.
func (t Token) Expires() time.Time {
	if t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time
}

func (t Token) String() string {
	return t.SignedString
}
