package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewTraceID returns a UUIDv7, so trace ids sort by arrival. A random v4 is
// used if the v7 clock source fails.
func NewTraceID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// RandomToken returns 64 hex characters drawn from two random v4 UUIDs.
func RandomToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
