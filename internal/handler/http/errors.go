// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. They are mapped to
// status codes by the same table as the service errors.
var (
	// ErrNoSession is returned when a dashboard route is called without the
	// session cookie.
	ErrNoSession = errors.New("no session cookie")

	// ErrNoAPIKey is returned when an integration route is called without
	// the X-API-Key header.
	ErrNoAPIKey = errors.New("empty `X-API-Key` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidPathID is returned when a numeric URL parameter is malformed.
	ErrInvalidPathID = errors.New("invalid id in path")

	// ErrInvalidQuery is returned when a query parameter is malformed.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrNoActor means an authenticated route ran without the auth
	// middleware in front of it.
	ErrNoActor = errors.New("no actor in request context")
)
