package production

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/domain/production"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByExternalID(ctx context.Context, externalID string) (*order.Order, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

// MockSheetRenderer is a mock implementation of production.SheetRenderer
type MockSheetRenderer struct {
	mock.Mock
}

func (m *MockSheetRenderer) Render(ctx context.Context, sheet production.Sheet) ([]byte, error) {
	args := m.Called(ctx, sheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockFileStore is a mock implementation of production.FileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, name string, data []byte) (*production.StoredFile, error) {
	args := m.Called(ctx, name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.StoredFile), args.Error(1)
}

func importedOrder(t *testing.T) *order.Order {
	t.Helper()
	r, err := valueobject.NewRecipient("Hans Muller", "hans.muller@example.de", "Berliner Str. 10", "Berlin", "", "10115", "Germany")
	require.NoError(t, err)
	o, err := order.NewImportedOrder(order.SourceEtsy, "ETSY-555555", nil, nil, r, []order.LineItem{
		{SKU: "WL-999", Title: "Mountain View Wallpaper", Quantity: 1, Variant: "300x250 cm"},
		{SKU: "", Title: "Mystery", Quantity: 1, Variant: "Roll (10m)"},
	})
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

type fixture struct {
	orders   *MockOrderRepository
	renderer *MockSheetRenderer
	store    *MockFileStore
	svc      *ProductionService
}

func newFixture() fixture {
	f := fixture{
		orders:   new(MockOrderRepository),
		renderer: new(MockSheetRenderer),
		store:    new(MockFileStore),
	}
	f.svc = NewProductionService(f.orders, f.renderer, f.store, nil, zap.NewNop())
	return f
}

func TestGenerateProductionFile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := importedOrder(t)
	pdf := []byte("%PDF-1.4 test")

	f.orders.On("FindByID", ctx, o.ID).Return(o, nil)
	f.renderer.On("Render", ctx, mock.MatchedBy(func(s production.Sheet) bool {
		return s.Size.WidthCM == 300 && s.Size.HeightCM == 250 &&
			s.PageWidth == 304 && s.PageHeight == 254 &&
			s.Lines[0].Text == "Order: ETSY-555555" &&
			s.Lines[1].Text == "SKU: WL-999" &&
			s.Lines[2].Text == "Size: 300.0x250.0 cm (+2.0cm bleed)"
	})).Return(pdf, nil)
	f.store.On("Save", ctx, "ETSY-555555_WL-999_0.pdf", pdf).
		Return(&production.StoredFile{Key: "ETSY-555555_WL-999_0.pdf", URL: "/production_files/ETSY-555555_WL-999_0.pdf"}, nil)
	f.orders.On("Update", ctx, o).Return(nil)

	result, err := f.svc.GenerateProductionFile(ctx, o.ID, 0)

	require.NoError(t, err)
	assert.Equal(t, "ETSY-555555_WL-999_0.pdf", result.FileName)
	assert.Equal(t, pdf, result.Content)
	assert.Equal(t, "in_production", result.Order.Status)
	assert.Equal(t, "/production_files/ETSY-555555_WL-999_0.pdf", result.Order.ProductionFileURL)
}

func TestGenerateProductionFile_DefaultsForUnparsableVariant(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := importedOrder(t)

	f.orders.On("FindByID", ctx, o.ID).Return(o, nil)
	f.renderer.On("Render", ctx, mock.MatchedBy(func(s production.Sheet) bool {
		return s.SKU == production.UnknownSKU && s.Size == production.DefaultDimensions()
	})).Return([]byte("pdf"), nil)
	f.store.On("Save", ctx, "ETSY-555555_UNKNOWN_1.pdf", []byte("pdf")).
		Return(&production.StoredFile{URL: "/production_files/ETSY-555555_UNKNOWN_1.pdf"}, nil)
	f.orders.On("Update", ctx, o).Return(nil)

	result, err := f.svc.GenerateProductionFile(ctx, o.ID, 1)

	require.NoError(t, err)
	assert.Equal(t, "ETSY-555555_UNKNOWN_1.pdf", result.FileName)
}

func TestGenerateProductionFile_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("order not found", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.orders.On("FindByID", ctx, id).Return(nil, order.ErrOrderNotFound)

		_, err := f.svc.GenerateProductionFile(ctx, id, 0)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("item index out of range", func(t *testing.T) {
		f := newFixture()
		o := importedOrder(t)
		f.orders.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := f.svc.GenerateProductionFile(ctx, o.ID, 2)
		assert.ErrorIs(t, err, order.ErrItemIndexOutOfRange)

		_, err = f.svc.GenerateProductionFile(ctx, o.ID, -1)
		assert.ErrorIs(t, err, order.ErrItemIndexOutOfRange)
		f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	})

	t.Run("render failure", func(t *testing.T) {
		f := newFixture()
		o := importedOrder(t)
		f.orders.On("FindByID", ctx, o.ID).Return(o, nil)
		f.renderer.On("Render", ctx, mock.Anything).Return(nil, errors.New("chrome crashed"))

		_, err := f.svc.GenerateProductionFile(ctx, o.ID, 0)
		assert.ErrorIs(t, err, production.ErrRenderFailed)
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture()
		o := importedOrder(t)
		f.orders.On("FindByID", ctx, o.ID).Return(o, nil)
		f.renderer.On("Render", ctx, mock.Anything).Return([]byte("pdf"), nil)
		f.store.On("Save", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		_, err := f.svc.GenerateProductionFile(ctx, o.ID, 0)
		assert.ErrorIs(t, err, production.ErrStoreFailed)
		assert.Equal(t, "draft", string(o.Status))
	})

	t.Run("cancelled order", func(t *testing.T) {
		f := newFixture()
		o := importedOrder(t)
		require.NoError(t, o.Cancel())
		f.orders.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := f.svc.GenerateProductionFile(ctx, o.ID, 0)
		assert.Error(t, err)
		f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	})
}
