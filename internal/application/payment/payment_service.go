package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/domain/payment"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	payLockPrefix = "order-pay:"
	// payLockTTL outlasts a gateway call so a crashed payment frees the order
	payLockTTL = 2 * time.Minute
)

// PayOrderInput contains input for paying an order
type PayOrderInput struct {
	OrderID uuid.UUID
	Method  string
	Token   string
	// UserID, when set, must own the order
	UserID *uuid.UUID
}

// PaymentDTO represents payment data transfer object
type PaymentDTO struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"method"`
	Provider      string          `json:"provider"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount.Amount(),
		Currency:      string(p.Amount.Currency()),
		Method:        string(p.Method),
		Provider:      string(p.Method.Provider()),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		FailureReason: p.FailureReason,
		CreatedAt:     p.CreatedAt,
	}
}

// PaymentService charges orders through the configured gateways
type PaymentService struct {
	paymentRepo payment.Repository
	orderRepo   order.Repository
	gateways    payment.GatewayResolver
	lock        shared.KeyLock
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewPaymentService creates a new payment service. events may be nil.
func NewPaymentService(
	paymentRepo payment.Repository,
	orderRepo order.Repository,
	gateways payment.GatewayResolver,
	lock shared.KeyLock,
	events shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateways:    gateways,
		lock:        lock,
		events:      events,
		logger:      logger,
	}
}

// PayOrder charges the full order amount. A declined charge is recorded as a
// failed payment and returned without error; the order stays unpaid.
// Payments of one order are serialized through the key lock, and the order is
// read only once the lock is held.
func (s *PaymentService) PayOrder(ctx context.Context, input PayOrderInput) (*PaymentDTO, error) {
	method, err := payment.ParseMethod(input.Method)
	if err != nil {
		return nil, err
	}

	lockKey := payLockPrefix + input.OrderID.String()
	lockToken, acquired, err := s.lock.Acquire(ctx, lockKey, payLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire payment lock: %w", err)
	}
	if !acquired {
		return nil, payment.ErrPaymentInProgress
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), lockKey, lockToken); err != nil {
			s.logger.Warn("Failed to release payment lock", zap.String("order_id", input.OrderID.String()), zap.Error(err))
		}
	}()

	o, err := s.loadOrder(ctx, input.OrderID, input.UserID)
	if err != nil {
		return nil, err
	}
	if o.IsPaid() {
		return nil, order.ErrAlreadyPaid
	}
	if o.Status == order.StatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot pay for a cancelled order")
	}
	if !o.Amount.IsPositive() {
		return nil, payment.ErrInvalidAmount
	}

	gateway, err := s.gateways.Resolve(ctx, method)
	if err != nil {
		return nil, err
	}

	p, err := payment.NewPayment(o.ID, o.Amount, method)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	log := s.logger.With(
		zap.String("order_id", o.ID.String()),
		zap.String("payment_id", p.ID.String()),
		zap.String("provider", string(gateway.Provider())),
	)

	result, err := gateway.Charge(ctx, &payment.ChargeRequest{
		OrderID:        o.ID,
		Reference:      o.Reference(),
		Amount:         o.Amount,
		Method:         method,
		Token:          input.Token,
		IdempotencyKey: p.ID.String(),
	})
	if err != nil {
		log.Error("Payment gateway error", zap.Error(err))
		_ = p.Fail("", err.Error())
		if uerr := s.paymentRepo.Update(ctx, p); uerr != nil {
			log.Error("Failed to record gateway error on payment", zap.Error(uerr))
		}
		return nil, payment.ErrGatewayUnavailable
	}

	if !result.Succeeded {
		_ = p.Fail(result.TransactionID, result.FailureReason)
		if err := s.paymentRepo.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("update payment: %w", err)
		}
		log.Warn("Payment declined", zap.String("reason", result.FailureReason))
		dto := toPaymentDTO(p)
		return &dto, nil
	}

	_ = p.Complete(result.TransactionID)
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	if err := o.MarkPaid(result.TransactionID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		log.Error("Payment captured but order update failed",
			zap.String("transaction_id", result.TransactionID), zap.Error(err))
		return nil, fmt.Errorf("mark order paid: %w", err)
	}
	event.PublishAndClear(ctx, s.events, o)

	log.Info("Payment completed",
		zap.String("transaction_id", result.TransactionID),
		zap.String("amount", o.Amount.String()))
	dto := toPaymentDTO(p)
	return &dto, nil
}

// ListPayments returns the payment attempts of an order, oldest first
func (s *PaymentService) ListPayments(ctx context.Context, orderID uuid.UUID, userID *uuid.UUID) ([]PaymentDTO, error) {
	if _, err := s.loadOrder(ctx, orderID, userID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentDTO(p))
	}
	return out, nil
}

func (s *PaymentService) loadOrder(ctx context.Context, orderID uuid.UUID, userID *uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if userID != nil && (o.UserID == nil || *o.UserID != *userID) {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}
