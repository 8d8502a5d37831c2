package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocations invalidates access tokens before they expire: single
// tokens on logout, and every token of a user on deactivation
type TokenRevocations interface {
	// Revoke rejects the token with this JTI for ttl (its remaining lifetime)
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked checks a single token
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUser rejects every token of the user issued up to now
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserRevoked reports whether a token issued at issuedAt predates the
	// user's last RevokeUser
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// RedisTokenRevocations implements TokenRevocations using Redis so that all
// instances see the same revocations
type RedisTokenRevocations struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenRevocations creates revocations on an existing Redis client
func NewRedisTokenRevocations(client *redis.Client) *RedisTokenRevocations {
	return &RedisTokenRevocations{
		client:    client,
		keyPrefix: "pod:auth:revoked:",
	}
}

func (r *RedisTokenRevocations) jtiKey(jti string) string {
	return r.keyPrefix + "jti:" + jti
}

func (r *RedisTokenRevocations) userKey(userID string) string {
	return r.keyPrefix + "user:" + userID
}

// Revoke stores the JTI until the token would have expired anyway
func (r *RedisTokenRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks whether the JTI was revoked
func (r *RedisTokenRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// RevokeUser stores the revocation time as Unix seconds
func (r *RedisTokenRevocations) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsUserRevoked compares the token's iat with the stored revocation time
func (r *RedisTokenRevocations) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	v, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token revocation: %w", err)
	}

	revokedAt, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation timestamp: %w", err)
	}
	return issuedAt.Unix() <= revokedAt, nil
}

// Ensure RedisTokenRevocations implements TokenRevocations
var _ TokenRevocations = (*RedisTokenRevocations)(nil)

// InMemoryTokenRevocations keeps revocations in process memory.
// Not shared between instances.
type InMemoryTokenRevocations struct {
	mu        sync.Mutex
	tokens    map[string]time.Time // jti -> expiry of the revocation entry
	userTimes map[string]time.Time // user id -> revocation time
}

// NewInMemoryTokenRevocations creates an empty revocation list
func NewInMemoryTokenRevocations() *InMemoryTokenRevocations {
	return &InMemoryTokenRevocations{
		tokens:    make(map[string]time.Time),
		userTimes: make(map[string]time.Time),
	}
}

// Revoke records the JTI until ttl elapses
func (r *InMemoryTokenRevocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks the JTI and drops expired entries
func (r *InMemoryTokenRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiresAt, ok := r.tokens[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		delete(r.tokens, jti)
		return false, nil
	}
	return true, nil
}

// RevokeUser records the current time for the user
func (r *InMemoryTokenRevocations) RevokeUser(_ context.Context, userID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userTimes[userID] = time.Now()
	return nil
}

// IsUserRevoked compares at second precision, matching JWT iat
func (r *InMemoryTokenRevocations) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	revokedAt, ok := r.userTimes[userID]
	if !ok {
		return false, nil
	}
	return issuedAt.Unix() <= revokedAt.Unix(), nil
}

// Ensure InMemoryTokenRevocations implements TokenRevocations
var _ TokenRevocations = (*InMemoryTokenRevocations)(nil)
