package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
)

// ChargeRequest asks a gateway to capture money for an order
type ChargeRequest struct {
	// OrderID is the internal order being paid
	OrderID uuid.UUID
	// Reference is the order number shown to the customer
	Reference string
	// Amount is the amount to capture
	Amount valueobject.Money
	// Method is the payment method the customer chose
	Method Method
	// Token is the client-side payment token (card or PayPal approval), optional for mocks
	Token string
	// IdempotencyKey prevents double charges when a request is retried
	IdempotencyKey string
}

// ChargeResult is the gateway's answer. A declined charge is a result with
// Succeeded false, not an error; errors mean the gateway could not decide.
type ChargeResult struct {
	TransactionID string
	Succeeded     bool
	FailureReason string
}

// Gateway is the port for external payment processors.
// Adapters (Stripe, PayPal, mocks) live in the infrastructure layer.
type Gateway interface {
	// Provider returns the processor this gateway talks to
	Provider() Provider

	// Charge captures the requested amount
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}

// GatewayResolver picks the gateway for a payment method, taking the stored
// payment configuration into account
type GatewayResolver interface {
	// Resolve returns ErrMethodDisabled when the provider is switched off
	Resolve(ctx context.Context, method Method) (Gateway, error)
}

// Repository defines the interface for payment persistence
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	// FindByOrder returns the order's payments, oldest first
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*Payment, error)
}
