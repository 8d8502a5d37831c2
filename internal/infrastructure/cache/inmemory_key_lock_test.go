package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/podplatform/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryKeyLock_AcquireRelease(t *testing.T) {
	l := NewInMemoryKeyLock()
	defer l.Close()
	ctx := context.Background()

	token, ok, err := l.Acquire(ctx, "store:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = l.Acquire(ctx, "store:1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	_, ok, err = l.Acquire(ctx, "store:2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "other keys are independent")

	require.NoError(t, l.Release(ctx, "store:1", token))
	_, ok, err = l.Acquire(ctx, "store:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryKeyLock_StaleReleaseKeepsNewHolder(t *testing.T) {
	l := NewInMemoryKeyLock()
	defer l.Close()
	ctx := context.Background()

	first, ok, err := l.Acquire(ctx, "sync:store", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	second, ok, err := l.Acquire(ctx, "sync:store", time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "expired holder is replaced")
	assert.NotEqual(t, first, second)

	// the first holder finishes late and releases with its old token
	require.NoError(t, l.Release(ctx, "sync:store", first))

	_, ok, err = l.Acquire(ctx, "sync:store", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "new holder keeps the key")

	require.NoError(t, l.Release(ctx, "sync:store", second))
	_, ok, err = l.Acquire(ctx, "sync:store", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryKeyLock_Expiry(t *testing.T) {
	l := NewInMemoryKeyLock()
	defer l.Close()
	ctx := context.Background()

	_, ok, err := l.Acquire(ctx, "k", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok, err = l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired holder is replaced")
}

func TestInMemoryKeyLock_Cleanup(t *testing.T) {
	l := NewInMemoryKeyLock()
	defer l.Close()
	ctx := context.Background()

	_, _, _ = l.Acquire(ctx, "a", time.Millisecond)
	_, _, _ = l.Acquire(ctx, "b", time.Hour)
	time.Sleep(5 * time.Millisecond)

	l.cleanup()
	assert.Equal(t, 1, l.Size())
}

func TestInMemoryKeyLock_Concurrent(t *testing.T) {
	l := NewInMemoryKeyLock()
	defer l.Close()
	ctx := context.Background()

	var winners int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := l.Acquire(ctx, "sync:store", time.Minute); ok {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners)
}

func TestInMemoryKeyLock_CloseIsIdempotent(t *testing.T) {
	l := NewInMemoryKeyLock()
	assert.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}

func TestKeyLockFactory_RedisDisabled(t *testing.T) {
	f := NewKeyLockFactory(config.RedisConfig{Enabled: false})
	lock, client, err := f.CreateLock()
	require.NoError(t, err)
	defer lock.Close()
	assert.Nil(t, client)
	assert.IsType(t, &InMemoryKeyLock{}, lock)
}

func TestKeyLockFactory_FallbackWhenUnreachable(t *testing.T) {
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	lock, client, err := NewKeyLockFactory(cfg).CreateLock()
	require.NoError(t, err)
	defer lock.Close()
	assert.Nil(t, client)
	assert.IsType(t, &InMemoryKeyLock{}, lock)

	_, _, err = NewKeyLockFactory(cfg, WithInMemoryFallback(false)).CreateLock()
	assert.Error(t, err)
}
