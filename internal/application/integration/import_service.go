package integration

import (
	"context"
	"fmt"
	"strings"

	"github.com/podplatform/backend/internal/domain/integration"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
	"github.com/podplatform/backend/internal/infrastructure/event"
	"go.uber.org/zap"
)

// ImportService turns marketplace orders into draft orders
type ImportService struct {
	orderRepo order.Repository
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewImportService creates a new import service. events may be nil.
func NewImportService(orderRepo order.Repository, events shared.EventPublisher, logger *zap.Logger) *ImportService {
	return &ImportService{
		orderRepo: orderRepo,
		events:    events,
		logger:    logger,
	}
}

// ImportExternalOrder stores po as a zero-amount draft owned by the store's
// user. Orders are deduplicated by external id only: when one already exists
// it is returned with created false. Losing an insert race to a concurrent
// import also returns the winner.
func (s *ImportService) ImportExternalOrder(ctx context.Context, store *integration.Store, po integration.PlatformOrder) (*order.Order, bool, error) {
	if err := po.Validate(); err != nil {
		return nil, false, err
	}
	externalID := strings.TrimSpace(po.ExternalID)

	existing, err := s.orderRepo.FindByExternalID(ctx, externalID)
	if err == nil {
		return existing, false, nil
	}
	if !shared.IsNotFound(err) {
		return nil, false, fmt.Errorf("find order %s: %w", externalID, err)
	}

	items := make([]order.LineItem, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, order.LineItem{
			SKU:      strings.TrimSpace(it.SKU),
			Title:    strings.TrimSpace(it.Title),
			Quantity: it.Quantity,
			Variant:  strings.TrimSpace(it.Variant),
			ImageURL: strings.TrimSpace(it.ImageURL),
		})
	}

	// Marketplace addresses are stored as delivered, without the checks
	// applied to manually entered ones
	recipient := valueobject.Recipient{
		Name:    strings.TrimSpace(po.CustomerName),
		Email:   strings.TrimSpace(po.CustomerEmail),
		Street:  strings.TrimSpace(po.AddressLine1),
		City:    strings.TrimSpace(po.City),
		State:   strings.TrimSpace(po.State),
		ZipCode: strings.TrimSpace(po.ZipCode),
		Country: strings.TrimSpace(po.Country),
	}

	userID := store.UserID
	storeID := store.ID
	o, err := order.NewImportedOrder(order.Source(store.Platform), externalID, &storeID, &userID, recipient, items)
	if err != nil {
		return nil, false, err
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		if shared.HasCode(err, order.ErrDuplicateExternalID.Code) {
			winner, rerr := s.orderRepo.FindByExternalID(ctx, externalID)
			if rerr != nil {
				return nil, false, fmt.Errorf("re-read order %s after conflict: %w", externalID, rerr)
			}
			s.logger.Debug("Concurrent import of order resolved to existing row",
				zap.String("external_id", externalID))
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("create order %s: %w", externalID, err)
	}
	event.PublishAndClear(ctx, s.events, o)

	s.logger.Info("Imported marketplace order",
		zap.String("order_id", o.ID.String()),
		zap.String("external_id", externalID),
		zap.String("platform", store.Platform.String()),
		zap.String("store_id", store.ID.String()))
	return o, true, nil
}
