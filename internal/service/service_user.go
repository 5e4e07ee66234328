package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-uid-panel/internal/lock"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/store"
	"github.com/MKhiriev/go-uid-panel/internal/validators"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/shopspring/decimal"
)

type userService struct {
	tx       store.Transactor
	users    store.UserRepository
	activity store.ActivityRepository

	locks     *lock.Keyed
	validator validators.Validator

	logger *logger.Logger
}

func NewUserService(storages *store.Storages, locks *lock.Keyed, logger *logger.Logger) UserService {
	return &userService{
		tx:        storages.Transactor,
		users:     storages.UserRepository,
		activity:  storages.ActivityRepository,
		locks:     locks,
		validator: validators.NewRequestValidator(),
		logger:    logger,
	}
}

// Create adds a regular user with an opening balance.
func (u *userService) Create(ctx context.Context, actor models.Actor, req models.CreateUserRequest) (models.User, error) {
	if !actor.IsOwner() {
		return models.User{}, ErrForbidden
	}
	if err := u.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	return u.create(ctx, actor.ID, models.User{
		Username: req.Username,
		Credits:  req.Credits.Round(2),
		IsActive: true,
	}, req.Password)
}

// CreateOwner bootstraps an owner account. It is used by the operator CLI
// and needs no actor; the entry is attributed to the new owner.
func (u *userService) CreateOwner(ctx context.Context, username, password string) (models.User, error) {
	if err := validators.Username(username); err != nil {
		return models.User{}, validationError(fmt.Errorf("%s: %w", validators.FieldUsername, err))
	}
	if err := validators.Password(password); err != nil {
		return models.User{}, validationError(fmt.Errorf("%s: %w", validators.FieldPassword, err))
	}

	return u.create(ctx, 0, models.User{
		Username: username,
		Credits:  decimal.Zero,
		IsOwner:  true,
		IsActive: true,
	}, password)
}

// create stores user and the user_created entry together. A zero actorID
// attributes the entry to the created user.
func (u *userService) create(ctx context.Context, actorID int64, user models.User, password string) (models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = hash

	err = u.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := u.users.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		user = created

		entryUserID := actorID
		if entryUserID == 0 {
			entryUserID = user.ID
		}
		_, err = u.activity.AppendActivity(ctx, models.ActivityEntry{
			UserID:  entryUserID,
			Action:  models.ActionUserCreated,
			Details: fmt.Sprintf("Created %s %s with %s credits", user.Role(), user.Username, user.Credits.StringFixed(2)),
		})
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, mapStoreError(err)
	}

	return user, nil
}

func (u *userService) List(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if !actor.IsOwner() {
		return nil, ErrForbidden
	}

	users, err := u.users.ListUsers(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return users, nil
}

func (u *userService) Get(ctx context.Context, actor models.Actor, userID int64) (models.User, error) {
	if !actor.CanActFor(userID) {
		return models.User{}, ErrForbidden
	}

	user, err := u.users.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}
	return user, nil
}

// AdjustCredits adds to or deducts from a balance. It holds the same user
// lock as UID creation, so a manual change never interleaves with a purchase.
func (u *userService) AdjustCredits(ctx context.Context, actor models.Actor, userID int64, req models.AdjustCreditsRequest) (models.User, error) {
	if !actor.IsOwner() {
		return models.User{}, ErrForbidden
	}
	if err := u.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	unlock, err := u.locks.Lock(ctx, userLockKey(userID))
	if err != nil {
		return models.User{}, err
	}
	defer unlock()

	delta, action, verb := req.Amount, models.ActionCreditAdd, "Added"
	if req.Operation == models.CreditOperationDeduct {
		delta, action, verb = req.Amount.Neg(), models.ActionCreditDeduct, "Deducted"
	}

	var user models.User
	err = u.tx.RunInTx(ctx, func(ctx context.Context) error {
		balance, err := u.users.AdjustUserCredits(ctx, userID, delta)
		if err != nil {
			return err
		}

		if user, err = u.users.GetUser(ctx, userID); err != nil {
			return err
		}

		details := fmt.Sprintf("%s %s credits for %s, balance %s",
			verb, req.Amount.StringFixed(2), user.Username, balance.StringFixed(2))
		_, err = u.activity.AppendActivity(ctx, models.ActivityEntry{
			UserID:  actor.ID,
			Action:  action,
			Details: details,
		})
		return err
	})
	if err != nil {
		return models.User{}, mapStoreError(err)
	}

	return user, nil
}

// SetActive suspends or reactivates a user. Suspended users cannot log in
// and their open sessions stop resolving.
func (u *userService) SetActive(ctx context.Context, actor models.Actor, userID int64, active bool) (models.User, error) {
	if !actor.IsOwner() {
		return models.User{}, ErrForbidden
	}
	if userID == actor.ID {
		return models.User{}, ErrSelfAction
	}

	if err := u.users.SetUserActive(ctx, userID, active); err != nil {
		return models.User{}, mapStoreError(err)
	}

	user, err := u.users.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}
	return user, nil
}

// Delete removes a user with every UID record, activity entry and API key
// that belongs to it. The UIDs are not removed at the bypass service.
func (u *userService) Delete(ctx context.Context, actor models.Actor, userID int64) error {
	if !actor.IsOwner() {
		return ErrForbidden
	}
	if userID == actor.ID {
		return ErrSelfAction
	}

	unlock, err := u.locks.Lock(ctx, userLockKey(userID))
	if err != nil {
		return err
	}
	defer unlock()

	if err = u.users.DeleteUser(ctx, userID); err != nil {
		return mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Int64("deleted_user_id", userID).Int64("actor_id", actor.ID).Msg("user deleted")
	return nil
}
