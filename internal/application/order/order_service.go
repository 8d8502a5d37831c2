package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/identity"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
	"github.com/podplatform/backend/internal/infrastructure/event"
	"go.uber.org/zap"
)

// OrderService handles order administration and manual order entry
type OrderService struct {
	orderRepo order.Repository
	userRepo  identity.UserRepository
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service. events may be nil.
func NewOrderService(
	orderRepo order.Repository,
	userRepo identity.UserRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		events:    events,
		logger:    logger,
	}
}

// Create stores a manual draft order. The owner's discount, if any, is
// applied to the amount.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	recipient, err := valueobject.NewRecipient(
		input.Recipient.Name, input.Recipient.Email, input.Recipient.Street,
		input.Recipient.City, input.Recipient.State, input.Recipient.ZipCode, input.Recipient.Country,
	)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	currency, err := valueobject.ParseCurrency(input.Currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	amount, err := valueobject.NewMoney(input.Amount, currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	if input.UserID != nil {
		owner, err := s.userRepo.FindByID(ctx, *input.UserID)
		if err != nil {
			return nil, err
		}
		amount = amount.ApplyDiscount(owner.Pricing.DiscountPercentage)
	}

	items := make([]order.LineItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, order.LineItem{
			SKU:        strings.TrimSpace(it.SKU),
			Title:      strings.TrimSpace(it.Title),
			Quantity:   it.Quantity,
			Variant:    strings.TrimSpace(it.Variant),
			ImageURL:   strings.TrimSpace(it.ImageURL),
			Dimensions: strings.TrimSpace(it.Dimensions),
		})
	}

	o, err := order.NewManualOrder(input.UserID, recipient, items, amount)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, o); err != nil {
		s.logger.Error("Failed to create order", zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}
	event.PublishAndClear(ctx, s.events, o)

	s.logger.Info("Manual order created",
		zap.String("order_id", o.ID.String()),
		zap.String("amount", o.Amount.String()),
		zap.Int("items", len(o.Items)))
	dto := ToOrderDTO(o)
	return &dto, nil
}

// List returns a page of orders, newest first
func (s *OrderService) List(ctx context.Context, input ListOrdersInput) (*shared.PageResult[OrderDTO], error) {
	filter := order.Filter{
		UserID: input.UserID,
		Page:   shared.NewPage(input.Offset, input.Limit),
	}
	if input.Status != "" {
		status := order.Status(strings.ToLower(strings.TrimSpace(input.Status)))
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown order status: %s", input.Status))
		}
		filter.Status = &status
	}

	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	result := shared.NewPageResult(ToOrderDTOs(orders), total, filter.Page)
	return &result, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToOrderDTO(o)
	return &dto, nil
}

// GetForUser retrieves an order owned by userID. Orders of other users are
// reported as missing.
func (s *OrderService) GetForUser(ctx context.Context, id, userID uuid.UUID) (*OrderDTO, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID == nil || *o.UserID != userID {
		return nil, order.ErrOrderNotFound
	}
	dto := ToOrderDTO(o)
	return &dto, nil
}

// Verify marks the order's payment as confirmed by an admin
func (s *OrderService) Verify(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.Verify(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		s.logger.Error("Failed to verify order", zap.String("order_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("verify order: %w", err)
	}
	event.PublishAndClear(ctx, s.events, o)

	s.logger.Info("Order verified", zap.String("order_id", id.String()), zap.String("status", string(o.Status)))
	dto := ToOrderDTO(o)
	return &dto, nil
}

// Ship records the tracking number. The shipping notification is sent by
// the OrderShipped event handler once the order is saved.
func (s *OrderService) Ship(ctx context.Context, id uuid.UUID, trackingNumber string) (*OrderDTO, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		return nil, order.ErrTrackingRequired
	}

	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.Ship(trackingNumber); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		s.logger.Error("Failed to ship order", zap.String("order_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("ship order: %w", err)
	}
	event.PublishAndClear(ctx, s.events, o)

	s.logger.Info("Order shipped",
		zap.String("order_id", id.String()),
		zap.String("tracking_number", o.TrackingNumber))
	dto := ToOrderDTO(o)
	return &dto, nil
}

// ListImportedDrafts returns draft orders, newest first, optionally only
// those of one user
func (s *OrderService) ListImportedDrafts(ctx context.Context, userID *uuid.UUID) ([]OrderDTO, error) {
	status := order.StatusDraft
	orders, _, err := s.orderRepo.FindAll(ctx, order.Filter{
		Status: &status,
		UserID: userID,
		Page:   shared.NewPage(0, shared.MaxPageLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("list draft orders: %w", err)
	}
	return ToOrderDTOs(orders), nil
}
