package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/integration"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testStore(t *testing.T, platform integration.Platform) *integration.Store {
	t.Helper()
	s, err := integration.NewStore(uuid.New(), platform, "My Shop")
	require.NoError(t, err)
	return s
}

func etsyOrder(externalID string) integration.PlatformOrder {
	return integration.PlatformOrder{
		ExternalID:    externalID,
		CustomerName:  " John Doe ",
		CustomerEmail: "john.doe@example.com",
		AddressLine1:  "123 Maple Avenue",
		City:          "Springfield",
		State:         "IL",
		ZipCode:       "62704",
		Country:       "US",
		Items: []integration.PlatformOrderItem{
			{SKU: "WL-204", Title: "Tropical Jungle Wallpaper", Quantity: 1, Variant: "100x100 cm"},
		},
	}
}

func TestImportExternalOrder_CreatesDraft(t *testing.T) {
	repo := newMemOrderRepository()
	svc := NewImportService(repo, nil, zap.NewNop())
	store := testStore(t, integration.PlatformEtsy)

	o, created, err := svc.ImportExternalOrder(context.Background(), store, etsyOrder("ETSY-123456"))

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, order.SourceEtsy, o.Source)
	assert.Equal(t, order.StatusDraft, o.Status)
	assert.True(t, o.Amount.IsZero())
	assert.Equal(t, "USD", string(o.Amount.Currency()))
	assert.Equal(t, store.UserID, *o.UserID)
	assert.Equal(t, store.ID, *o.StoreID)
	assert.Equal(t, "John Doe", o.Recipient.Name)
	assert.Equal(t, "ETSY-123456", o.Reference())
	require.Len(t, o.Items, 1)
	assert.Equal(t, "WL-204", o.Items[0].SKU)
}

func TestImportExternalOrder_ExistingIsReturned(t *testing.T) {
	repo := newMemOrderRepository()
	svc := NewImportService(repo, nil, zap.NewNop())
	store := testStore(t, integration.PlatformEtsy)
	ctx := context.Background()

	first, created, err := svc.ImportExternalOrder(ctx, store, etsyOrder("ETSY-123456"))
	require.NoError(t, err)
	require.True(t, created)

	// Dedup is by external id only, even across stores
	other := testStore(t, integration.PlatformShopify)
	second, created, err := svc.ImportExternalOrder(ctx, other, etsyOrder("ETSY-123456"))

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.count())
}

func TestImportExternalOrder_LostRaceReturnsWinner(t *testing.T) {
	repo := newMemOrderRepository()
	svc := NewImportService(repo, nil, zap.NewNop())
	store := testStore(t, integration.PlatformEtsy)

	winner, err := order.NewImportedOrder(order.SourceEtsy, "ETSY-777777", nil, nil, valueobject.Recipient{Name: "Winner"},
		[]order.LineItem{{SKU: "X", Quantity: 1}})
	require.NoError(t, err)
	repo.raced = winner
	repo.failCreateWith = order.ErrDuplicateExternalID

	got, created, err := svc.ImportExternalOrder(context.Background(), store, etsyOrder("ETSY-777777"))

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, got.ID)
}

func TestImportExternalOrder_CreateError(t *testing.T) {
	repo := newMemOrderRepository()
	repo.failCreateWith = errors.New("connection refused")
	svc := NewImportService(repo, nil, zap.NewNop())

	_, _, err := svc.ImportExternalOrder(context.Background(), testStore(t, integration.PlatformEtsy), etsyOrder("ETSY-1"))

	assert.ErrorContains(t, err, "connection refused")
}

func TestImportExternalOrder_InvalidOrder(t *testing.T) {
	svc := NewImportService(newMemOrderRepository(), nil, zap.NewNop())
	po := etsyOrder("")

	_, _, err := svc.ImportExternalOrder(context.Background(), testStore(t, integration.PlatformEtsy), po)

	assert.ErrorIs(t, err, integration.ErrInvalidPlatformOrder)
}
