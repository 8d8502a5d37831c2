package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared"
)

type heldKey struct {
	token     string
	expiresAt time.Time
}

// InMemoryKeyLock implements shared.KeyLock with a map of owner tokens and
// expiry times. Suitable for single-instance deployments and testing.
type InMemoryKeyLock struct {
	mu        sync.Mutex
	held      map[string]heldKey
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryKeyLock creates a new in-memory lock.
// It starts a background goroutine to drop expired keys.
func NewInMemoryKeyLock() *InMemoryKeyLock {
	l := &InMemoryKeyLock{
		held:     make(map[string]heldKey),
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Acquire takes the key for ttl. An expired holder is replaced.
func (l *InMemoryKeyLock) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, exists := l.held[key]; exists && time.Now().Before(h.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.held[key] = heldKey{token: token, expiresAt: time.Now().Add(ttl)}
	return token, true, nil
}

// Release frees the key while it is still held with token
func (l *InMemoryKeyLock) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, exists := l.held[key]; exists && h.token == token {
		delete(l.held, key)
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (l *InMemoryKeyLock) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
	})
	return nil
}

func (l *InMemoryKeyLock) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *InMemoryKeyLock) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, h := range l.held {
		if now.After(h.expiresAt) {
			delete(l.held, key)
		}
	}
}

// Size returns the number of held keys (for testing/monitoring)
func (l *InMemoryKeyLock) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

// Ensure InMemoryKeyLock implements KeyLock
var _ shared.KeyLock = (*InMemoryKeyLock)(nil)
