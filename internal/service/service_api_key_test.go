package service

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPIKeyService() (*fakeLedger, APIKeyService) {
	ledger := newFakeLedger()
	ledger.addUser(ownerActor.ID, "0.00", true)
	ledger.addUser(userActor.ID, "5.00", false)

	return ledger, NewAPIKeyService(ledger.storages(), testAppConfig, logger.Nop())
}

// TestAPIKeyService_CreateAndAuthenticate verifies that the plaintext key is
// returned once, only its hash is stored, and it authenticates to the scope
// of the key's user.
func TestAPIKeyService_CreateAndAuthenticate(t *testing.T) {
	ledger, svc := newTestAPIKeyService()
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerActor, models.CreateAPIKeyRequest{
		UserID:       userActor.ID,
		Name:         "shop bot",
		MaxUIDs:      intPtr(5),
		AllowedPlans: []string{"1d", models.PlanFree},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.Key, APIKeyPrefix))
	assert.Equal(t, created.Key[:apiKeyDisplayLength], created.KeyPrefix)
	assert.NotContains(t, created.KeyHash, created.Key)

	stored := ledger.keys[created.ID]
	assert.NotEqual(t, created.Key, stored.KeyHash)

	scope, actor, err := svc.Authenticate(ctx, created.Key)
	require.NoError(t, err)
	assert.Equal(t, created.ID, scope.KeyID)
	assert.Equal(t, userActor.ID, scope.UserID)
	assert.Equal(t, 5, *scope.MaxUIDs)
	assert.True(t, scope.AllowsPlan(models.PlanFree))
	assert.False(t, scope.AllowsPlan("7d"))
	assert.Equal(t, models.Actor{ID: userActor.ID, Role: models.RoleUser}, actor)
	assert.NotNil(t, ledger.keys[created.ID].LastUsedAt)
}

func TestAPIKeyService_AuthenticateRejections(t *testing.T) {
	ledger, svc := newTestAPIKeyService()
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerActor, models.CreateAPIKeyRequest{UserID: userActor.ID, Name: "bot"})
	require.NoError(t, err)

	for _, key := range []string{"", "nope", APIKeyPrefix + "unknown", strings.TrimPrefix(created.Key, APIKeyPrefix)} {
		_, _, err = svc.Authenticate(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidAPIKey, key)
	}

	k := ledger.keys[created.ID]
	k.IsActive = false
	ledger.keys[created.ID] = k
	_, _, err = svc.Authenticate(ctx, created.Key)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	k.IsActive = true
	ledger.keys[created.ID] = k
	require.NoError(t, ledger.SetUserActive(ctx, userActor.ID, false))
	_, _, err = svc.Authenticate(ctx, created.Key)
	assert.ErrorIs(t, err, ErrUserSuspended)
}

func TestAPIKeyService_CreateRejections(t *testing.T) {
	_, svc := newTestAPIKeyService()
	ctx := context.Background()

	_, err := svc.Create(ctx, userActor, models.CreateAPIKeyRequest{UserID: userActor.ID, Name: "bot"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, ownerActor, models.CreateAPIKeyRequest{UserID: userActor.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, ownerActor, models.CreateAPIKeyRequest{UserID: userActor.ID, Name: "bot", AllowedPlans: []string{"2d"}})
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = svc.Create(ctx, ownerActor, models.CreateAPIKeyRequest{UserID: 404, Name: "bot"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAPIKeyService_ListAndDelete(t *testing.T) {
	_, svc := newTestAPIKeyService()
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerActor, models.CreateAPIKeyRequest{UserID: userActor.ID, Name: "bot"})
	require.NoError(t, err)

	keys, err := svc.List(ctx, ownerActor)
	require.NoError(t, err)
	require.Len(t, keys, 1)

	_, err = svc.List(ctx, userActor)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(ctx, ownerActor, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, ownerActor, created.ID), ErrAPIKeyNotFound)

	_, _, err = svc.Authenticate(ctx, created.Key)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}
