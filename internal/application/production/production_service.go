package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	apporder "github.com/podplatform/backend/internal/application/order"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/domain/production"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/infrastructure/event"
	"github.com/podplatform/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// FileResult is a generated production file and the updated order
type FileResult struct {
	FileName string
	URL      string
	Content  []byte
	Order    apporder.OrderDTO
}

// ProductionService generates print-ready PDFs for order lines
type ProductionService struct {
	orderRepo order.Repository
	renderer  production.SheetRenderer
	store     production.FileStore
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewProductionService creates a new production service. events may be nil.
func NewProductionService(
	orderRepo order.Repository,
	renderer production.SheetRenderer,
	store production.FileStore,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ProductionService {
	return &ProductionService{
		orderRepo: orderRepo,
		renderer:  renderer,
		store:     store,
		events:    events,
		logger:    logger,
	}
}

// GenerateProductionFile renders the sheet for one line item, stores it and
// records its URL on the order, which moves to in_production
func (s *ProductionService) GenerateProductionFile(ctx context.Context, orderID uuid.UUID, itemIndex int) (*FileResult, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := o.Item(itemIndex)
	if err != nil {
		return nil, err
	}
	if o.Status == order.StatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot produce a cancelled order")
	}

	sheet := production.NewSheet(production.SheetSpec{
		Reference: o.Reference(),
		SKU:       item.SKU,
		ItemIndex: itemIndex,
		Variant:   item.Variant,
		ImageURL:  item.ImageURL,
	})

	log := s.logger.With(
		zap.String("order_id", o.ID.String()),
		zap.Int("item_index", itemIndex),
		zap.String("size", sheet.Size.String()),
	)

	renderCtx, span := telemetry.StartSpan(ctx, "production.render_sheet",
		"order_id", o.ID,
		"size", sheet.Size.String(),
	)
	pdf, err := s.renderer.Render(renderCtx, sheet)
	telemetry.RecordError(span, err)
	span.End()
	if err != nil {
		log.Error("Failed to render production sheet", zap.Error(err))
		return nil, production.ErrRenderFailed
	}

	stored, err := s.store.Save(ctx, sheet.FileName(), pdf)
	if err != nil {
		log.Error("Failed to store production file", zap.Error(err))
		return nil, production.ErrStoreFailed
	}

	if err := o.AttachProductionFile(stored.URL); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		log.Error("Failed to record production file on order", zap.Error(err))
		return nil, fmt.Errorf("update order: %w", err)
	}
	event.PublishAndClear(ctx, s.events, o)

	log.Info("Production file generated",
		zap.String("file", sheet.FileName()),
		zap.String("url", stored.URL),
		zap.Int("bytes", len(pdf)))

	return &FileResult{
		FileName: sheet.FileName(),
		URL:      stored.URL,
		Content:  pdf,
		Order:    apporder.ToOrderDTO(o),
	}, nil
}
