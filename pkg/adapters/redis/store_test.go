package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/sfsweb/pkg/adapters/redis"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunStatusStoreContract(t, store)
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))

	err := store.Save(context.Background(), "default", domain.NewBoard())
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:default"))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	board := domain.NewBoard()
	board.Apply(domain.Navigate("/recycled"))
	require.NoError(t, store.Save(ctx, "ttl", board))

	loaded, err := store.Load(ctx, "ttl")
	require.NoError(t, err)
	assert.Equal(t, "/recycled", loaded.Location)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "ttl")
	assert.ErrorIs(t, err, domain.ErrBoardNotFound)
}

func TestRedisLocker_TryLock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, ok, err := locker.TryLock(ctx, "upload", 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("test:inflight:upload"), "Lock key should be set in Redis")

	// Contention: a second holder is refused without waiting.
	_, ok, err = locker.TryLock(ctx, "upload", 5*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	// Other keys are independent.
	unlockOther, ok, err := locker.TryLock(ctx, "settings", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, unlockOther(ctx))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:inflight:upload"), "Lock key should be removed after unlock")

	_, ok, err = locker.TryLock(ctx, "upload", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_ExpiredHolderReleased(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	_, ok, err := locker.TryLock(ctx, "empty-bin", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = locker.TryLock(ctx, "empty-bin", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "TTL must free a key held by a crashed process")
}

func TestRedisLocker_StaleUnlockKeepsNewOwner(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	staleUnlock, ok, err := locker.TryLock(ctx, "search", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = locker.TryLock(ctx, "search", 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, staleUnlock(ctx))
	assert.True(t, mr.Exists("test:inflight:search"), "a stale unlock must not delete the new owner's key")
}
