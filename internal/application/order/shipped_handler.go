package order

import (
	"context"
	"fmt"

	"github.com/podplatform/backend/internal/domain/identity"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShippingNotice is the message sent when an order ships
type ShippingNotice struct {
	To             string `json:"to"`
	Name           string `json:"name"`
	OrderReference string `json:"order_reference"`
	TrackingNumber string `json:"tracking_number"`
}

// Subject is the notice headline
func (n ShippingNotice) Subject() string {
	return fmt.Sprintf("Your order %s has shipped", n.OrderReference)
}

// ShippingNotifier delivers shipping notices (email, log, ...)
type ShippingNotifier interface {
	NotifyShipped(ctx context.Context, notice ShippingNotice) error
}

// OrderShippedHandler tells the order owner, or the recipient of an order
// without an owner, that the order has shipped
type OrderShippedHandler struct {
	userRepo identity.UserRepository
	notifier ShippingNotifier
	logger   *zap.Logger
}

// NewOrderShippedHandler creates a new handler for OrderShipped events
func NewOrderShippedHandler(userRepo identity.UserRepository, notifier ShippingNotifier, logger *zap.Logger) *OrderShippedHandler {
	return &OrderShippedHandler{
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderShippedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderShipped}
}

// Handle processes an OrderShippedEvent
func (h *OrderShippedHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	shipped, ok := evt.(*order.OrderShippedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s", order.EventTypeOrderShipped, evt.EventType())
	}

	notice := ShippingNotice{
		To:             shipped.RecipientEmail,
		Name:           shipped.RecipientName,
		OrderReference: shipped.Reference,
		TrackingNumber: shipped.TrackingNumber,
	}

	if shipped.UserID != nil {
		owner, err := h.userRepo.FindByID(ctx, *shipped.UserID)
		switch {
		case err == nil:
			notice.To = owner.Email
			notice.Name = owner.FullName
		case shared.IsNotFound(err):
			h.logger.Warn("Owner of shipped order not found, notifying recipient",
				zap.String("order_id", shipped.AggregateID().String()),
				zap.String("user_id", shipped.UserID.String()))
		default:
			return fmt.Errorf("load order owner: %w", err)
		}
	}

	if notice.To == "" {
		h.logger.Info("No address to notify about shipped order",
			zap.String("order_id", shipped.AggregateID().String()))
		return nil
	}

	if err := h.notifier.NotifyShipped(ctx, notice); err != nil {
		return fmt.Errorf("send shipping notice: %w", err)
	}
	return nil
}

// Ensure OrderShippedHandler implements shared.EventHandler
var _ shared.EventHandler = (*OrderShippedHandler)(nil)
