package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

const defaultLockPrefix = "pod:lock:"

// releaseScript deletes the key only while it still holds our token, so a
// lock that expired and was taken by another instance is left alone
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisKeyLock implements shared.KeyLock with SET NX PX.
// It is safe to share between goroutines and across process instances.
type RedisKeyLock struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisKeyLock creates a lock on an existing client. The client is not
// closed by Close.
func NewRedisKeyLock(client *redis.Client, keyPrefix string) *RedisKeyLock {
	if keyPrefix == "" {
		keyPrefix = defaultLockPrefix
	}
	return &RedisKeyLock{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire takes the key for ttl. It returns false when the key is held.
func (l *RedisKeyLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.keyPrefix+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire lock %q: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release gives up a key acquired with token. Releasing a key that has
// expired or was taken over is a no-op.
func (l *RedisKeyLock) Release(ctx context.Context, key, token string) error {
	if token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, l.client, []string{l.keyPrefix + key}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release lock %q: %w", key, err)
	}
	return nil
}

// Close is a no-op. The shared client is closed by its owner.
func (l *RedisKeyLock) Close() error {
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (l *RedisKeyLock) GetClient() *redis.Client {
	return l.client
}

// Ensure RedisKeyLock implements KeyLock
var _ shared.KeyLock = (*RedisKeyLock)(nil)
