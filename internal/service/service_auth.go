package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/store"
	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/internal/validators"
	"github.com/MKhiriev/go-uid-panel/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It verifies bcrypt password hashes, issues signed session tokens and turns
// a session back into the [models.Actor] the rest of the services consume.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// activityRepository records successful logins.
	activityRepository store.ActivityRepository

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued session remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with session parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, activityRepository store.ActivityRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:     userRepository,
		activityRepository: activityRepository,
		validator:          validators.NewRequestValidator(),
		tokenSignKey:       cfg.SessionSignKey,
		tokenIssuer:        cfg.SessionIssuer,
		tokenDuration:      cfg.SessionDuration,
		logger:             logger,
	}
}

// Login authenticates a user and issues a session token.
//
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials so the
// response does not reveal which accounts exist. A suspended account yields
// ErrUserSuspended. A successful login is recorded in the activity log before
// the token is returned.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, validationError(err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Int64("id", user.ID).Str("username", user.Username).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.User{}, models.Token{}, ErrUserSuspended
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, user.ID, user.Role(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("error creating session token: %w", err)
	}

	if _, err = a.activityRepository.AppendActivity(ctx, models.ActivityEntry{
		UserID:  user.ID,
		Action:  models.ActionLogin,
		Details: fmt.Sprintf("User %s logged in", user.Username),
	}); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("recording login failed")
		return models.User{}, models.Token{}, mapStoreError(err)
	}

	return user, token, nil
}

// ParseSession validates a raw session token. Any failure (expired, wrong
// issuer, bad signature, malformed) is reported as ErrInvalidSession.
func (a *authService) ParseSession(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("session token rejected")
		return models.Token{}, ErrInvalidSession
	}

	return token, nil
}

// ResolveActor implements AuthService. The role in the token is ignored: the
// user row is the source of truth, so a demotion or suspension applies to
// sessions that are already open.
func (a *authService) ResolveActor(ctx context.Context, token models.Token) (models.Actor, models.User, error) {
	user, err := a.userRepository.GetUser(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Actor{}, models.User{}, ErrInvalidSession
		}
		return models.Actor{}, models.User{}, fmt.Errorf("loading session user: %w", err)
	}

	if !user.IsActive {
		return models.Actor{}, models.User{}, ErrUserSuspended
	}

	return user.Actor(), user, nil
}

// hashPassword returns the bcrypt hash of password.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}
