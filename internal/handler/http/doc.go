// Package http implements the REST surface of the dashboard and the
// integration API under /api/v1.
//
// Requests pass through tracing, access logging and compression middleware.
// Dashboard routes are authenticated with the session cookie and integration
// routes with the X-API-Key header; both produce a [models.Actor] that is
// handed to the service layer explicitly.
package http
