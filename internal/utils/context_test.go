// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	assert.Equal(t, "testKey", key.String())
	assert.Equal(t, "actor", ActorCtxKey.String())
}

func TestActorFromContext_Success(t *testing.T) {
	ctx := WithActor(context.Background(), models.Actor{ID: 42, Role: models.RoleOwner})

	actor, ok := ActorFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), actor.ID)
	assert.True(t, actor.IsOwner())
}

func TestActorFromContext_Missing(t *testing.T) {
	actor, ok := ActorFromContext(context.Background())
	assert.False(t, ok)
	assert.Zero(t, actor)
}

func TestActorFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ActorCtxKey, int64(42))

	_, ok := ActorFromContext(ctx)
	assert.False(t, ok)
}

func TestAPIKeyScopeFromContext(t *testing.T) {
	limit := 3
	ctx := WithAPIKeyScope(context.Background(), models.APIKeyScope{KeyID: 7, UserID: 2, MaxUIDs: &limit})

	scope, ok := APIKeyScopeFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), scope.KeyID)
	assert.Equal(t, 3, *scope.MaxUIDs)

	_, ok = APIKeyScopeFromContext(context.Background())
	assert.False(t, ok)
}
