package server

import "context"

// Server defines the lifecycle contract for the transport server managed by
// this package.
//
// Implementations block in [RunServer] until ctx is cancelled or serving
// fails, and release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting for in-flight requests
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
