package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 4
	connMaxIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// NewConnectPostgres opens the ledger database through the pgx stdlib
// driver and checks that it answers. A malformed DSN is rejected before any
// connection is attempted.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	connCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid database uri: %w", err)
	}

	conn := stdlib.OpenDB(*connCfg)
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err = conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		log.Err(err).Str("func", "NewConnectPostgres").Str("host", connCfg.Host).Msg("database is unreachable")
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	log.Info().Str("func", "NewConnectPostgres").
		Str("host", connCfg.Host).
		Str("database", connCfg.Database).
		Msg("connected to database")

	return &DB{
		DB:        conn,
		logger:    log,
		retryable: retryableTxError,
	}, nil
}
