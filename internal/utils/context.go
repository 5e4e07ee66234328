// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, session token
// generation and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-uid-panel/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ActorCtxKey is the key under which the authenticated [models.Actor] is
// stored by the session and API key middlewares.
var ActorCtxKey = contextKey("actor")

// APIKeyScopeCtxKey is the key under which the [models.APIKeyScope] of an
// integration request is stored.
var APIKeyScopeCtxKey = contextKey("apiKeyScope")

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, ActorCtxKey, actor)
}

// ActorFromContext retrieves the actor stored by WithActor.
//
// Returns the actor and an ok flag:
//   - ok == true: value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorCtxKey).(models.Actor)
	return actor, ok
}

func WithAPIKeyScope(ctx context.Context, scope models.APIKeyScope) context.Context {
	return context.WithValue(ctx, APIKeyScopeCtxKey, scope)
}

func APIKeyScopeFromContext(ctx context.Context) (models.APIKeyScope, bool) {
	scope, ok := ctx.Value(APIKeyScopeCtxKey).(models.APIKeyScope)
	return scope, ok
}
