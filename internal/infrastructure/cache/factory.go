package cache

import (
	"fmt"

	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyLockFactory creates key locks based on configuration
type KeyLockFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// KeyLockFactoryOption is a functional option for configuring the factory
type KeyLockFactoryOption func(*KeyLockFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) KeyLockFactoryOption {
	return func(f *KeyLockFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory lock
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) KeyLockFactoryOption {
	return func(f *KeyLockFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewKeyLockFactory creates a new factory
func NewKeyLockFactory(cfg config.RedisConfig, opts ...KeyLockFactoryOption) *KeyLockFactory {
	f := &KeyLockFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateLock returns a Redis-backed lock when Redis is enabled and reachable,
// otherwise an in-memory lock if fallback is allowed. The returned client is
// nil for in-memory locks; callers share it with other Redis users and close it.
func (f *KeyLockFactory) CreateLock() (shared.KeyLock, *redis.Client, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory key lock")
		return NewInMemoryKeyLock(), nil, nil
	}

	client, err := NewRedisClient(f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis key lock", zap.String("addr", f.redisConfig.Addr()))
		return NewRedisKeyLock(client, defaultLockPrefix), client, nil
	}

	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("redis required for key locks but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory key lock. "+
		"Concurrent syncs on other instances will not be detected.",
		zap.Error(err),
	)
	return NewInMemoryKeyLock(), nil, nil
}
