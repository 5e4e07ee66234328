// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the typed client of the external bypass service,
// the third-party system of record for UID validity.
//
// The primary abstraction is [BypassClient]. Clients are built per request by
// a [ClientFactory] that reads the current base URL and API key through a
// [SettingsProvider], so a settings change applies without a restart.
//
// Every failure is reported as an [*ExternalServiceError] whose Kind is one of
// [ErrExternalTimeout], [ErrExternalRejected], [ErrExternalMalformed] or
// [ErrExternalUnavailable]; all of them also match [ErrExternalService] with
// [errors.Is]. The client never retries.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-uid-panel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/bypass_client_mock.go -package=mock

// BypassClient issues authenticated calls to the external bypass service.
type BypassClient interface {
	// CreateUID provisions uid under a paid plan.
	CreateUID(ctx context.Context, uid string, plan models.Plan, region string) (models.ExternalUIDRecord, error)

	// CreateUIDFree provisions uid under the one-day free plan.
	CreateUIDFree(ctx context.Context, uid string, region string) (models.ExternalUIDRecord, error)

	// DeleteUID removes uid remotely.
	DeleteUID(ctx context.Context, uid string) (models.ExternalDeleteResult, error)

	// ListUIDs returns one page of the remote listing. An empty status
	// lists every status.
	ListUIDs(ctx context.Context, page, perPage int, status string) (models.ExternalUIDPage, error)

	// RenewUID extends the remote expiration of uid by days.
	RenewUID(ctx context.Context, uid string, days int) (models.ExternalRenewResult, error)

	// UpdateUID renames oldUID to newUID. The remote service has no rename
	// primitive, so this deletes oldUID and then provisions newUID for free.
	// When the second step fails the error is a [*PartialUpdateError]: oldUID
	// is already gone remotely and newUID does not exist.
	UpdateUID(ctx context.Context, oldUID, newUID, region string) (models.ExternalUIDRecord, error)
}

// SettingsProvider resolves the current bypass service settings. It returns
// [ErrSettingsNotConfigured] when no settings have been saved yet.
type SettingsProvider interface {
	ExternalAPISettings(ctx context.Context) (models.ExternalAPISettings, error)
}

// ClientFactory builds a [BypassClient] bound to the settings current at the
// time of the call.
type ClientFactory interface {
	NewClient(ctx context.Context) (BypassClient, error)
}
