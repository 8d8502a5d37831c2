package payment

import (
	"strings"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
)

// ---------------------------------------------------------------------------
// Payment Errors
// ---------------------------------------------------------------------------

var (
	ErrPaymentNotFound    = shared.NewDomainError("NOT_FOUND", "Payment not found")
	ErrInvalidMethod      = shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
	ErrInvalidAmount      = shared.NewDomainError("INVALID_STATE", "Order amount must be positive to pay")
	ErrMethodDisabled     = shared.NewDomainError("INVALID_STATE", "Payment method disabled")
	ErrGatewayNotFound    = shared.NewDomainError("INVALID_STATE", "No gateway configured for payment method")
	ErrAlreadyFinalised   = shared.NewDomainError("INVALID_STATE", "Payment is already completed or failed")
	ErrGatewayUnavailable = shared.NewDomainError("GATEWAY_UNAVAILABLE", "Payment gateway is temporarily unavailable")
	ErrPaymentInProgress  = shared.NewDomainError("CONFLICT", "A payment for this order is already in progress")
)

// ---------------------------------------------------------------------------
// Method and Provider
// ---------------------------------------------------------------------------

// Method is how the customer chose to pay
type Method string

const (
	MethodCreditCard Method = "credit_card"
	MethodPayPal     Method = "paypal"
)

// ParseMethod normalises a payment method name
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", ErrInvalidMethod
	}
	return m, nil
}

// IsValid returns true if the method is known
func (m Method) IsValid() bool {
	return m == MethodCreditCard || m == MethodPayPal
}

// Provider returns the processor that handles the method
func (m Method) Provider() Provider {
	if m == MethodPayPal {
		return ProviderPayPal
	}
	return ProviderStripe
}

// Provider is a payment processor
type Provider string

const (
	ProviderStripe Provider = "stripe"
	ProviderPayPal Provider = "paypal"
)

// ---------------------------------------------------------------------------
// Payment
// ---------------------------------------------------------------------------

// Status is the outcome of a payment attempt
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Payment records one attempt to charge an order
type Payment struct {
	shared.BaseEntity
	OrderID       uuid.UUID
	Amount        valueobject.Money
	Method        Method
	Status        Status
	TransactionID string
	FailureReason string
}

// NewPayment creates a pending payment for an order
func NewPayment(orderID uuid.UUID, amount valueobject.Money, method Method) (*Payment, error) {
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Amount:     amount,
		Method:     method,
		Status:     StatusPending,
	}, nil
}

// Complete records a successful charge
func (p *Payment) Complete(transactionID string) error {
	if p.Status != StatusPending {
		return ErrAlreadyFinalised
	}
	p.Status = StatusCompleted
	p.TransactionID = transactionID
	p.Touch()
	return nil
}

// Fail records a declined or errored charge
func (p *Payment) Fail(transactionID, reason string) error {
	if p.Status != StatusPending {
		return ErrAlreadyFinalised
	}
	p.Status = StatusFailed
	p.TransactionID = transactionID
	p.FailureReason = reason
	p.Touch()
	return nil
}
