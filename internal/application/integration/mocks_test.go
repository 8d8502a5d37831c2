package integration

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/integration"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/stretchr/testify/mock"
)

// MockStoreRepository is a mock implementation of integration.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Save(ctx context.Context, s *integration.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByUserAndPlatform(ctx context.Context, userID uuid.UUID, platform integration.Platform) (*integration.Store, error) {
	args := m.Called(ctx, userID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*integration.Store, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*integration.Store), args.Error(1)
}

// memOrderRepository is an in-memory order.Repository keyed by external id,
// enough to exercise import deduplication
type memOrderRepository struct {
	mu         sync.Mutex
	byExternal map[string]*order.Order
	// failCreateWith, when set, is returned by Create after storing raced
	raced          *order.Order
	failCreateWith error
}

func newMemOrderRepository() *memOrderRepository {
	return &memOrderRepository{byExternal: make(map[string]*order.Order)}
}

func (r *memOrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateWith != nil {
		if r.raced != nil {
			r.byExternal[r.raced.ExternalID] = r.raced
		}
		return r.failCreateWith
	}
	if _, ok := r.byExternal[o.ExternalID]; ok {
		return order.ErrDuplicateExternalID
	}
	r.byExternal[o.ExternalID] = o
	return nil
}

func (r *memOrderRepository) Update(_ context.Context, _ *order.Order) error { return nil }

func (r *memOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byExternal {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *memOrderRepository) FindByExternalID(_ context.Context, externalID string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.byExternal[externalID]; ok {
		return o, nil
	}
	return nil, order.ErrOrderNotFound
}

func (r *memOrderRepository) FindAll(_ context.Context, _ order.Filter) ([]*order.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.Order, 0, len(r.byExternal))
	for _, o := range r.byExternal {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byExternal)
}

// fakeSource returns a fixed list of marketplace orders
type fakeSource struct {
	platform integration.Platform
	orders   []integration.PlatformOrder
	err      error
	// block, when set, is waited on before returning
	block chan struct{}
}

func (s *fakeSource) Platform() integration.Platform { return s.platform }

func (s *fakeSource) FetchOrders(ctx context.Context, _ *integration.Store) ([]integration.PlatformOrder, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.orders, s.err
}
