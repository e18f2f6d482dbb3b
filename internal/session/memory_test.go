package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(userID string, ttl time.Duration, now time.Time) *Session {
	return &Session{
		UserID:       userID,
		Email:        userID + "@example.com",
		Role:         "admin",
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		LastActivity: now,
	}
}

func TestMemoryRegistryPutGet(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(10)

	now := time.Now()
	require.NoError(t, r.Put(ctx, "tok-1", testSession("u1", time.Hour, now)))

	got, err := r.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistryExpiredSessionIsEvicted(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(10)

	base := time.Now()
	r.now = func() time.Time { return base }
	require.NoError(t, r.Put(ctx, "tok", testSession("u1", time.Minute, base)))

	// Advance the clock past expiry.
	r.now = func() time.Time { return base.Add(2 * time.Minute) }

	_, err := r.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, r.Len(), "expired session must be removed on lookup")
}

func TestMemoryRegistryTouchDoesNotExtendExpiry(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(10)

	base := time.Now()
	r.now = func() time.Time { return base }
	require.NoError(t, r.Put(ctx, "tok", testSession("u1", time.Minute, base)))

	r.now = func() time.Time { return base.Add(30 * time.Second) }
	require.NoError(t, r.Touch(ctx, "tok"))

	got, err := r.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, base.Add(30*time.Second), got.LastActivity)
	assert.Equal(t, base.Add(time.Minute), got.ExpiresAt, "touch must not slide expiry")
}

func TestMemoryRegistryRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(10)

	require.NoError(t, r.Put(ctx, "tok", testSession("u1", time.Hour, time.Now())))
	require.NoError(t, r.Remove(ctx, "tok"))
	require.NoError(t, r.Remove(ctx, "tok"))

	_, err := r.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistryRemoveAll(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(10)

	now := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Put(ctx, fmt.Sprintf("tok-%d", i), testSession("u", time.Hour, now)))
	}
	require.NoError(t, r.RemoveAll(ctx))
	assert.Equal(t, 0, r.Len())
}

func TestMemoryRegistryCapacityEvictsLeastRecentlyActive(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(2)

	base := time.Now()
	old := testSession("old", time.Hour, base)
	old.LastActivity = base.Add(-time.Hour)
	fresh := testSession("fresh", time.Hour, base)

	require.NoError(t, r.Put(ctx, "tok-old", old))
	require.NoError(t, r.Put(ctx, "tok-fresh", fresh))
	require.NoError(t, r.Put(ctx, "tok-new", testSession("new", time.Hour, base)))

	assert.Equal(t, 2, r.Len())
	_, err := r.Get(ctx, "tok-old")
	assert.ErrorIs(t, err, ErrNotFound, "least recently active session should be evicted")

	_, err = r.Get(ctx, "tok-fresh")
	assert.NoError(t, err)
}

func TestMemoryRegistrySweep(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(10)

	base := time.Now()
	r.now = func() time.Time { return base }
	require.NoError(t, r.Put(ctx, "live", testSession("u1", time.Hour, base)))
	require.NoError(t, r.Put(ctx, "dead", testSession("u2", time.Minute, base)))

	r.now = func() time.Time { return base.Add(10 * time.Minute) }
	require.NoError(t, r.Sweep(ctx))

	assert.Equal(t, 1, r.Len())
	_, err := r.Get(ctx, "live")
	assert.NoError(t, err)
}
