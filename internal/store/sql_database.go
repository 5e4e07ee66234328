package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/migrations"
)

// maxTxAttempts bounds how often [DB.RunInTx] runs a transaction that keeps
// failing with a retryable error.
const maxTxAttempts = 3

// DB wraps the connection pool. retryable decides whether a failed
// transaction may be run again; nil never retries.
type DB struct {
	*sql.DB
	retryable func(error) bool
	logger    *logger.Logger
}

// txKey is the context key under which an open *sql.Tx is carried.
type txKey struct{}

// querier is the subset of *sql.DB and *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or the pool when there is none.
func (db *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

// RunInTx runs fn inside a single transaction. Repository calls made with the
// context passed to fn join that transaction. A call made while a transaction
// is already open simply joins it.
//
// Transactions that fail with a retryable PostgreSQL error (serialization
// failure, deadlock, lost connection) are run again, up to maxTxAttempts in
// total. Domain errors returned by fn are never retried.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runInTx(ctx, fn)
		if err == nil || db.retryable == nil || !db.retryable(err) || ctx.Err() != nil {
			return err
		}

		log.Warn().Err(err).
			Str("func", "DB.RunInTx").
			Int("attempt", attempt).
			Msg("retrying transaction after retryable error")
	}

	return err
}

func (db *DB) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB)
}
