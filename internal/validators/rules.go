package validators

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds shared by the request validator and the services.
const (
	MinUIDLength = 6
	MaxUIDLength = 12
	MaxRenewDays = 365
)

var (
	uidValuePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,12}$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)
	regionPattern   = regexp.MustCompile(`^[A-Za-z0-9-]{0,32}$`)
)

// UIDValue checks the external identifier format: 6 to 12 ASCII letters or digits.
func UIDValue(value string) error {
	if !uidValuePattern.MatchString(value) {
		return ErrInvalidUIDValue
	}
	return nil
}

func Username(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// Password bounds the length to what bcrypt accepts.
func Password(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrInvalidPassword
	}
	return nil
}

// Region accepts an empty value, which means the configured default region.
func Region(region string) error {
	if !regionPattern.MatchString(region) {
		return ErrInvalidRegion
	}
	return nil
}

func RenewDays(days int) error {
	if days < 1 || days > MaxRenewDays {
		return ErrInvalidDays
	}
	return nil
}

// Amount accepts a strictly positive value with at most two decimal places.
func Amount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}

// BaseURL accepts absolute http and https URLs. A value without a scheme
// is read as https, matching how the bypass client dials it.
func BaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrInvalidBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	return nil
}
