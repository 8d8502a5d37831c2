package shared

import (
	"context"
	"time"
)

// KeyLock grants short-lived exclusive ownership of a key.
// Acquire returns false when someone else already holds the key. The returned
// token identifies this holder; Release with a stale token leaves a newer
// holder's lock in place.
type KeyLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
	Close() error
}
