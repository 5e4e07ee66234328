package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &DB{DB: db, logger: logger.Nop(), retryable: retryableTxError}, mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: db.logger}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userRowColumns = []string{"id", "username", "password_hash", "credits", "is_owner", "is_active", "created_at"}

// ── CreateUser ──

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	now := time.Now()
	user := models.User{Username: "alice", PasswordHash: "hash", Credits: decimal.RequireFromString("5.00"), IsActive: true}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "hash", "5", false, true).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "alice", "hash", "5.00", false, true, now))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "5.00", created.Credits.StringFixed(2))
	assert.True(t, created.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ── GetUser / FindUserByUsername ──

func TestGetUser_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUser(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "owner", "hash", "0.00", true, true, time.Now()))

	user, err := repo.FindUserByUsername(context.Background(), "owner")
	require.NoError(t, err)
	assert.True(t, user.IsOwner)
	assert.Equal(t, models.RoleOwner, user.Role())
}

func TestListUsers_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ── AdjustUserCredits ──

// TestAdjustUserCredits_Debit verifies that a debit within the balance
// returns the new balance from the guarded UPDATE.
func TestAdjustUserCredits_Debit(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("UPDATE users SET credits = credits \\+ \\$2").
		WithArgs(int64(1), "-1.3").
		WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow("3.70"))

	balance, err := repo.AdjustUserCredits(context.Background(), 1, decimal.RequireFromString("-1.30"))
	require.NoError(t, err)
	assert.Equal(t, "3.70", balance.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestAdjustUserCredits_Insufficient verifies that a debit past zero matches
// no row and, since the user exists, reports insufficient credits.
func TestAdjustUserCredits_Insufficient(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("UPDATE users SET credits").
		WithArgs(int64(1), "-2.33").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.AdjustUserCredits(context.Background(), 1, decimal.RequireFromString("-2.33"))
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustUserCredits_UserNotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("UPDATE users SET credits").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.AdjustUserCredits(context.Background(), 9, decimal.RequireFromString("1"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdjustUserCredits_CheckViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("UPDATE users SET credits").
		WillReturnError(pgError(pgerrcode.CheckViolation))

	_, err := repo.AdjustUserCredits(context.Background(), 1, decimal.RequireFromString("-10"))
	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

// ── SetUserActive / DeleteUser ──

func TestSetUserActive_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users SET is_active").
		WithArgs(int64(3), false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetUserActive(context.Background(), 3, false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteUser(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
