// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the go-uid-panel server from its configuration.
//
// [New] opens the ledger database, applies the schema migrations, connects
// the optional activity archive and wires the services, the HTTP server and
// the background workers. [App.Run] then serves until its context is
// cancelled. [OpenServices] gives operator tooling the same services without
// the transport layer.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/handler"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/server"
	"github.com/MKhiriev/go-uid-panel/internal/service"
	"github.com/MKhiriev/go-uid-panel/internal/store"
	"github.com/MKhiriev/go-uid-panel/internal/workers"
	"github.com/MKhiriev/go-uid-panel/models"
	"golang.org/x/sync/errgroup"
)

// App is a fully wired server ready to run.
type App struct {
	server  server.Server
	workers *workers.Workers
	closer  io.Closer
	logger  *logger.Logger
}

func New(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	db, storages, err := openStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	services := service.NewServices(storages, *cfg, log)

	handlers, err := handler.NewHandlers(services, *cfg, buildInfo, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	return &App{
		server:  srv,
		workers: workers.NewWorkers(services, cfg.Workers, log),
		closer:  db,
		logger:  log,
	}, nil
}

// Run serves HTTP and runs the enabled workers until ctx is cancelled or one
// of them fails. The database is closed before Run returns.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	a.logger.Info().Int("workers", a.workers.Len()).Msg("starting application")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.server.RunServer(ctx)
	})
	g.Go(func() error {
		return a.workers.Run(ctx)
	})

	return g.Wait()
}

func (a *App) close() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		a.logger.Err(err).Str("func", "*App.close").Msg("error closing database")
	}
}

// OpenServices connects the storage described by cfg and returns the
// services over it. The returned closer releases the database; callers must
// close it. Migrations are not applied.
func OpenServices(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*service.Services, io.Closer, error) {
	db, storages, err := openStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, nil, err
	}

	return service.NewServices(storages, *cfg, log), db, nil
}

// OpenDatabase connects the ledger database only, for schema operations.
func OpenDatabase(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, error) {
	db, err := store.NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	return db, nil
}

func openStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*store.DB, *store.Storages, error) {
	db, err := OpenDatabase(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}

	archive, err := store.NewActivityArchive(ctx, cfg.Archive, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, errors.Join(errActivityArchive, err)
	}

	return db, store.NewStorages(db, archive, log), nil
}
