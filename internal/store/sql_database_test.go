package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── RunInTx ──

// TestRunInTx_CommitsAndJoins verifies that repository calls made with the
// transaction context run on the transaction and are committed together.
func TestRunInTx_CommitsAndJoins(t *testing.T) {
	db, mock := newTestDB(t)
	users := &userRepository{db: db, logger: db.logger}
	activity := &activityRepository{db: db, logger: db.logger}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users SET credits").
		WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow("3.70"))
	mock.ExpectQuery("INSERT INTO activity_log").
		WillReturnRows(sqlmock.NewRows(activityRowColumns).AddRow(1, 1, "create_uid", "", time.Now()))
	mock.ExpectCommit()

	err := db.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := users.AdjustUserCredits(ctx, 1, decimal.RequireFromString("-1.30")); err != nil {
			return err
		}
		_, err := activity.AppendActivity(ctx, models.ActivityEntry{UserID: 1, Action: models.ActionCreateUID})
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	db, mock := newTestDB(t)
	fnErr := errors.New("domain failure")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.RunInTx(context.Background(), func(context.Context) error { return fnErr })
	assert.ErrorIs(t, err, fnErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRunInTx_RetriesSerializationFailure verifies that a retryable
// PostgreSQL error reruns the whole transaction once more.
func TestRunInTx_RetriesSerializationFailure(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM uid_records").WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM uid_records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &uidRepository{db: db, logger: db.logger}
	calls := 0
	err := db.RunInTx(context.Background(), func(ctx context.Context) error {
		calls++
		return repo.DeleteUIDRecord(ctx, 1)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_DoesNotRetryDomainErrors(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	err := db.RunInTx(context.Background(), func(context.Context) error {
		calls++
		return ErrInsufficientCredits
	})
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, 1, calls)
}

func TestRunInTx_NestedCallJoinsOuter(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := db.RunInTx(context.Background(), func(ctx context.Context) error {
		return db.RunInTx(ctx, func(context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_BeginError(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

	err := db.RunInTx(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}
