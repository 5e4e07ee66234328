// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the request bodies of the dashboard and the
// integration API before the services act on them.
//
// [RequestValidator] knows every request model: usernames and passwords,
// credit amounts, UID values and durations, plan identifiers, settings and
// API key scopes. Validate can be restricted to named fields, which the
// services use when only part of a request applies (a status change does not
// re-check the UID value).
//
// Failures wrap the field name and one of the sentinel errors of this
// package, so callers can match them with errors.Is.
package validators

import "context"

// Validator checks a request model. With field names, only those fields
// are checked.
type Validator interface {
	Validate(ctx context.Context, req any, fields ...string) error
}
