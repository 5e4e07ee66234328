// Package server wires and runs the application's HTTP server.
//
// It owns the server lifecycle: startup, the per-request timeout and the
// graceful shutdown that lets in-flight requests finish once the run
// context is cancelled.
package server
