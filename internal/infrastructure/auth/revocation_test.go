package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/podplatform/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenRevocations_Revoke(t *testing.T) {
	r := auth.NewInMemoryTokenRevocations()
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenRevocations_Expiry(t *testing.T) {
	r := auth.NewInMemoryTokenRevocations()
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "jti-short", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := r.IsRevoked(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenRevocations_RevokeUser(t *testing.T) {
	r := auth.NewInMemoryTokenRevocations()
	ctx := context.Background()
	issuedBefore := time.Now().Add(-time.Hour)

	revoked, err := r.IsUserRevoked(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.RevokeUser(ctx, "user-1", time.Hour))

	revoked, err = r.IsUserRevoked(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsUserRevoked(ctx, "user-1", time.Now().Add(2*time.Second))
	require.NoError(t, err)
	assert.False(t, revoked, "tokens issued after the revocation stay valid")

	revoked, err = r.IsUserRevoked(ctx, "user-2", issuedBefore)
	require.NoError(t, err)
	assert.False(t, revoked)
}
