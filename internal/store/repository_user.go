package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles dashboard accounts and their credit balances in the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Credits, &user.IsOwner, &user.IsActive, &user.CreatedAt)
	return user, err
}

// CreateUser persists a new user and returns it with the server-assigned
// fields (ID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameTaken].
//   - check_violation on credits → [ErrInsufficientCredits].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.conn(ctx).QueryRowContext(ctx, createUser, user.Username, user.PasswordHash, user.Credits, user.IsOwner, user.IsActive)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error creating user")

		switch pgCode(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameTaken
		case pgerrcode.CheckViolation:
			return models.User{}, ErrInsufficientCredits
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return created, nil
}

func (r *userRepository) GetUser(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.GetUser", getUserByID, id)
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByUsername", findUserByUsername, username)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, listUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to list users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// AdjustUserCredits applies delta in a single guarded UPDATE so concurrent
// adjustments for the same user can never drive the balance below zero.
//
// When the UPDATE matches no row, an existence check tells a missing user
// ([ErrUserNotFound]) apart from a rejected debit ([ErrInsufficientCredits]).
func (r *userRepository) AdjustUserCredits(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx)
	conn := r.db.conn(ctx)

	var balance decimal.Decimal
	err := conn.QueryRowContext(ctx, adjustUserCredits, userID, delta).Scan(&balance)
	if err == nil {
		return balance, nil
	}

	if pgCode(err) == pgerrcode.CheckViolation {
		return decimal.Decimal{}, ErrInsufficientCredits
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Str("func", "*userRepository.AdjustUserCredits").Int64("user_id", userID).Msg("failed to adjust credits")
		return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var exists bool
	if err = conn.QueryRowContext(ctx, userExists, userID).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*userRepository.AdjustUserCredits").Int64("user_id", userID).Msg("failed to check user existence")
		return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !exists {
		return decimal.Decimal{}, ErrUserNotFound
	}

	return decimal.Decimal{}, ErrInsufficientCredits
}

func (r *userRepository) SetUserActive(ctx context.Context, userID int64, active bool) error {
	return r.execAffectingUser(ctx, "*userRepository.SetUserActive", setUserActive, userID, active)
}

func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	return r.execAffectingUser(ctx, "*userRepository.DeleteUser", deleteUser, userID)
}

func (r *userRepository) execAffectingUser(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
