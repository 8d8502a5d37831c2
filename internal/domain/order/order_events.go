package order

import (
	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared"
)

// AggregateTypeOrder names the order aggregate in events
const AggregateTypeOrder = "Order"

const (
	EventTypeOrderCreated           = "OrderCreated"
	EventTypeOrderPaid              = "OrderPaid"
	EventTypeOrderShipped           = "OrderShipped"
	EventTypeProductionFileAttached = "ProductionFileAttached"
	EventTypeOrderCancelled         = "OrderCancelled"
)

// OrderCreatedEvent is published when an order is entered or imported
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	Source     Source `json:"source"`
	ExternalID string `json:"external_id,omitempty"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		Source:          o.Source,
		ExternalID:      o.ExternalID,
	}
}

// OrderPaidEvent is published when payment is verified or captured
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	TransactionID string `json:"transaction_id,omitempty"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order, transactionID string) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		TransactionID:   transactionID,
	}
}

// OrderShippedEvent is published when an order ships
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	Reference      string     `json:"reference"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	RecipientName  string     `json:"recipient_name"`
	RecipientEmail string     `json:"recipient_email,omitempty"`
	TrackingNumber string     `json:"tracking_number"`
}

// NewOrderShippedEvent creates a new OrderShippedEvent
func NewOrderShippedEvent(o *Order) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, o.ID),
		Reference:       o.Reference(),
		UserID:          o.UserID,
		RecipientName:   o.Recipient.Name,
		RecipientEmail:  o.Recipient.Email,
		TrackingNumber:  o.TrackingNumber,
	}
}

// ProductionFileAttachedEvent is published when a print file is generated
type ProductionFileAttachedEvent struct {
	shared.BaseDomainEvent
	URL string `json:"url"`
}

// NewProductionFileAttachedEvent creates a new ProductionFileAttachedEvent
func NewProductionFileAttachedEvent(o *Order) *ProductionFileAttachedEvent {
	return &ProductionFileAttachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductionFileAttached, AggregateTypeOrder, o.ID),
		URL:             o.ProductionFileURL,
	}
}

// OrderCancelledEvent is published when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
	}
}
