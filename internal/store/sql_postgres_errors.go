package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgCode returns the SQLSTATE of the PostgreSQL error in err's chain, or ""
// when err did not come from the server.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// pgConstraint returns the name of the violated constraint, if any.
func pgConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// retryableTxError reports whether a failed transaction may be run again.
// That is the case for class 08 (connection exception), class 40
// (serialization failure, deadlock) and 57P03, and for a driver that could
// not connect at all. Constraint violations and everything else are final.
func retryableTxError(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	code := pgCode(err)
	switch {
	case code == "":
		return false
	case pgerrcode.IsConnectionException(code), pgerrcode.IsTransactionRollback(code):
		return true
	default:
		return code == pgerrcode.CannotConnectNow
	}
}
