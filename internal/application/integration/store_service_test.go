package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/integration"
	"github.com/podplatform/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type storeFixture struct {
	stores *MockStoreRepository
	orders *memOrderRepository
	lock   *cache.InMemoryKeyLock
	source *fakeSource
	svc    *StoreService
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	f := &storeFixture{
		stores: new(MockStoreRepository),
		orders: newMemOrderRepository(),
		lock:   cache.NewInMemoryKeyLock(),
		source: &fakeSource{platform: integration.PlatformEtsy},
	}
	t.Cleanup(func() { _ = f.lock.Close() })
	f.svc = NewStoreService(
		f.stores,
		[]integration.OrderSource{f.source},
		NewImportService(f.orders, nil, zap.NewNop()),
		f.lock,
		StoreServiceConfig{SyncLockTTL: time.Minute, SyncTimeout: time.Second},
		zap.NewNop(),
	)
	return f
}

func TestStoreService_Connect_New(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	f.stores.On("FindByUserAndPlatform", ctx, userID, integration.PlatformShopify).Return(nil, integration.ErrStoreNotFound)
	f.stores.On("Save", ctx, mock.AnythingOfType("*integration.Store")).Return(nil)

	dto, err := f.svc.Connect(ctx, userID, "Shopify", "Poster Palace")

	require.NoError(t, err)
	assert.Equal(t, "shopify", dto.Platform)
	assert.Equal(t, "Shopify", dto.DisplayName)
	assert.Equal(t, "Poster Palace", dto.ShopName)
	assert.True(t, dto.IsConnected)
}

func TestStoreService_Connect_UpsertsExisting(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	existing := testStore(t, integration.PlatformEtsy)
	existing.Disconnect()

	f.stores.On("FindByUserAndPlatform", ctx, existing.UserID, integration.PlatformEtsy).Return(existing, nil)
	f.stores.On("Save", ctx, existing).Return(nil)

	dto, err := f.svc.Connect(ctx, existing.UserID, "etsy", "Renamed Shop")

	require.NoError(t, err)
	assert.Equal(t, existing.ID, dto.ID)
	assert.Equal(t, "Renamed Shop", dto.ShopName)
	assert.True(t, dto.IsConnected)
	assert.Equal(t, integration.MockAccessToken, existing.AccessToken)
}

func TestStoreService_Connect_UnknownPlatform(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.svc.Connect(context.Background(), uuid.New(), "amazon", "Shop")

	assert.ErrorIs(t, err, integration.ErrUnknownPlatform)
}

func TestStoreService_List(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	store := testStore(t, integration.PlatformWoo)
	f.stores.On("FindByUser", ctx, store.UserID).Return([]*integration.Store{store}, nil)

	stores, err := f.svc.List(ctx, store.UserID)

	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "WooCommerce", stores[0].DisplayName)
}

func TestStoreService_Sync_CountsOnlyNewOrders(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	store := testStore(t, integration.PlatformEtsy)
	f.source.orders = []integration.PlatformOrder{etsyOrder("ETSY-100001"), etsyOrder("ETSY-100002")}
	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)

	result, err := f.svc.Sync(ctx, store.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.NewOrdersCount)
	assert.Equal(t, "Successfully synced orders from My Shop", result.Message)

	f.source.orders = append(f.source.orders, etsyOrder("ETSY-100003"))
	result, err = f.svc.Sync(ctx, store.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewOrdersCount)
	assert.Equal(t, 3, result.FetchedCount)
	assert.Equal(t, 3, f.orders.count())
	assert.Equal(t, 0, f.lock.Size(), "lock released after sync")
}

func TestStoreService_Sync_SkipsInvalidOrders(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	store := testStore(t, integration.PlatformEtsy)
	bad := etsyOrder("ETSY-BAD")
	bad.Items = nil
	f.source.orders = []integration.PlatformOrder{bad, etsyOrder("ETSY-GOOD")}
	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)

	result, err := f.svc.Sync(ctx, store.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.NewOrdersCount)
	assert.Equal(t, 1, result.SkippedCount)
}

func TestStoreService_Sync_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("store not found", func(t *testing.T) {
		f := newStoreFixture(t)
		id := uuid.New()
		f.stores.On("FindByID", ctx, id).Return(nil, integration.ErrStoreNotFound)

		_, err := f.svc.Sync(ctx, id, nil)
		assert.ErrorIs(t, err, integration.ErrStoreNotFound)
	})

	t.Run("store of another user", func(t *testing.T) {
		f := newStoreFixture(t)
		store := testStore(t, integration.PlatformEtsy)
		f.stores.On("FindByID", ctx, store.ID).Return(store, nil)
		other := uuid.New()

		_, err := f.svc.Sync(ctx, store.ID, &other)
		assert.ErrorIs(t, err, integration.ErrStoreNotFound)
	})

	t.Run("disconnected store", func(t *testing.T) {
		f := newStoreFixture(t)
		store := testStore(t, integration.PlatformEtsy)
		store.Disconnect()
		f.stores.On("FindByID", ctx, store.ID).Return(store, nil)

		_, err := f.svc.Sync(ctx, store.ID, nil)
		assert.ErrorIs(t, err, integration.ErrStoreDisconnected)
	})

	t.Run("platform without source", func(t *testing.T) {
		f := newStoreFixture(t)
		store := testStore(t, integration.PlatformWoo)
		f.stores.On("FindByID", ctx, store.ID).Return(store, nil)

		_, err := f.svc.Sync(ctx, store.ID, nil)
		assert.ErrorIs(t, err, integration.ErrPlatformNotSupported)
	})

	t.Run("marketplace failure", func(t *testing.T) {
		f := newStoreFixture(t)
		store := testStore(t, integration.PlatformEtsy)
		f.source.err = errors.New("503 from marketplace")
		f.stores.On("FindByID", ctx, store.ID).Return(store, nil)

		_, err := f.svc.Sync(ctx, store.ID, nil)
		assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
		assert.Equal(t, 0, f.lock.Size())
	})
}

func TestStoreService_Sync_ConcurrentSyncRejected(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	store := testStore(t, integration.PlatformEtsy)
	f.source.orders = []integration.PlatformOrder{etsyOrder("ETSY-200001")}
	f.source.block = make(chan struct{})
	f.stores.On("FindByID", ctx, store.ID).Return(store, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Sync(ctx, store.ID, nil)
		done <- err
	}()

	require.Eventually(t, func() bool { return f.lock.Size() == 1 }, time.Second, 5*time.Millisecond)

	_, err := f.svc.Sync(ctx, store.ID, nil)
	assert.ErrorIs(t, err, integration.ErrSyncInProgress)

	close(f.source.block)
	require.NoError(t, <-done)
}
