package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-uid-panel/internal/lock"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService() (*fakeLedger, UserService) {
	ledger := newFakeLedger()
	ledger.addUser(ownerActor.ID, "0.00", true)
	ledger.addUser(userActor.ID, "5.00", false)

	return ledger, NewUserService(ledger.storages(), lock.NewKeyed(), logger.Nop())
}

// ── Create ──

func TestUserService_Create(t *testing.T) {
	ledger, svc := newTestUserService()

	user, err := svc.Create(context.Background(), ownerActor, models.CreateUserRequest{
		Username: "alice",
		Password: "s3cret-pass",
		Credits:  decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	assert.False(t, user.IsOwner)
	assert.True(t, user.IsActive)
	assert.Equal(t, "10.00", user.Credits.StringFixed(2))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	entries := ledger.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionUserCreated, entries[0].Action)
	assert.Equal(t, ownerActor.ID, entries[0].UserID)
}

func TestUserService_CreateRejections(t *testing.T) {
	_, svc := newTestUserService()
	ctx := context.Background()
	valid := models.CreateUserRequest{Username: "alice", Password: "s3cret-pass"}

	_, err := svc.Create(ctx, userActor, valid)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, ownerActor, models.CreateUserRequest{Username: "al", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, ownerActor, models.CreateUserRequest{Username: "alice", Password: "s3cret-pass", Credits: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, ownerActor, models.CreateUserRequest{Username: "user2", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_CreateOwner(t *testing.T) {
	ledger, svc := newTestUserService()

	owner, err := svc.CreateOwner(context.Background(), "root", "s3cret-pass")
	require.NoError(t, err)

	assert.True(t, owner.IsOwner)
	entries := ledger.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, owner.ID, entries[0].UserID)

	_, err = svc.CreateOwner(context.Background(), "root2", "short")
	assert.ErrorIs(t, err, ErrValidation)
}

// ── Credits ──

func TestUserService_AdjustCredits(t *testing.T) {
	ledger, svc := newTestUserService()
	ctx := context.Background()

	user, err := svc.AdjustCredits(ctx, ownerActor, userActor.ID, models.AdjustCreditsRequest{
		Amount: decimal.RequireFromString("2.50"), Operation: models.CreditOperationAdd,
	})
	require.NoError(t, err)
	assert.Equal(t, "7.50", user.Credits.StringFixed(2))

	user, err = svc.AdjustCredits(ctx, ownerActor, userActor.ID, models.AdjustCreditsRequest{
		Amount: decimal.RequireFromString("7.50"), Operation: models.CreditOperationDeduct,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.00", user.Credits.StringFixed(2))

	assert.Equal(t, []models.ActivityAction{models.ActionCreditAdd, models.ActionCreditDeduct}, actionsOf(ledger.entries()))
}

// TestUserService_AdjustCreditsNeverNegative verifies that a deduction past
// zero is refused and leaves the balance and the log untouched.
func TestUserService_AdjustCreditsNeverNegative(t *testing.T) {
	ledger, svc := newTestUserService()

	_, err := svc.AdjustCredits(context.Background(), ownerActor, userActor.ID, models.AdjustCreditsRequest{
		Amount: decimal.RequireFromString("5.01"), Operation: models.CreditOperationDeduct,
	})

	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, "5.00", ledger.balance(userActor.ID).StringFixed(2))
	assert.Empty(t, ledger.entries())
}

func TestUserService_AdjustCreditsRejections(t *testing.T) {
	_, svc := newTestUserService()
	ctx := context.Background()
	add := models.AdjustCreditsRequest{Amount: decimal.RequireFromString("1"), Operation: models.CreditOperationAdd}

	_, err := svc.AdjustCredits(ctx, userActor, userActor.ID, add)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AdjustCredits(ctx, ownerActor, userActor.ID, models.AdjustCreditsRequest{Amount: decimal.RequireFromString("0.001"), Operation: models.CreditOperationAdd})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AdjustCredits(ctx, ownerActor, userActor.ID, models.AdjustCreditsRequest{Amount: decimal.RequireFromString("1"), Operation: "double"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AdjustCredits(ctx, ownerActor, 404, add)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ── Status and deletion ──

func TestUserService_SetActive(t *testing.T) {
	_, svc := newTestUserService()
	ctx := context.Background()

	user, err := svc.SetActive(ctx, ownerActor, userActor.ID, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	_, err = svc.SetActive(ctx, ownerActor, ownerActor.ID, false)
	assert.ErrorIs(t, err, ErrSelfAction)

	_, err = svc.SetActive(ctx, userActor, userActor.ID, true)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserService_DeleteCascades(t *testing.T) {
	ledger, svc := newTestUserService()
	ledger.addUID(models.UIDRecord{UserID: userActor.ID, Value: "ABC123", Status: models.UIDStatusActive})
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, ownerActor, userActor.ID))
	assert.Zero(t, ledger.uidCount())

	assert.ErrorIs(t, svc.Delete(ctx, ownerActor, userActor.ID), ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ownerActor, ownerActor.ID), ErrSelfAction)
}

func TestUserService_ListAndGet(t *testing.T) {
	_, svc := newTestUserService()
	ctx := context.Background()

	users, err := svc.List(ctx, ownerActor)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.List(ctx, userActor)
	assert.ErrorIs(t, err, ErrForbidden)

	me, err := svc.Get(ctx, userActor, userActor.ID)
	require.NoError(t, err)
	assert.Equal(t, "user2", me.Username)

	_, err = svc.Get(ctx, userActor, ownerActor.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
