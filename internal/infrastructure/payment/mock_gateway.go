package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/podplatform/backend/internal/domain/payment"
	"go.uber.org/zap"
)

// Test tokens that make the mock gateways decline, mirroring Stripe's
// test card conventions
const (
	DeclineToken            = "tok_chargeDeclined"
	InsufficientFundsToken  = "tok_chargeDeclinedInsufficientFunds"
	mockDeclineMessage      = "Your card was declined."
	mockInsufficientMessage = "Your card has insufficient funds."
)

// MockStripeGateway approves every charge except the decline test tokens
// and issues pi_mock_ transaction ids
type MockStripeGateway struct {
	logger *zap.Logger
}

// NewMockStripeGateway creates the offline card gateway
func NewMockStripeGateway(logger *zap.Logger) *MockStripeGateway {
	return &MockStripeGateway{logger: logger}
}

// Provider returns stripe
func (g *MockStripeGateway) Provider() payment.Provider {
	return payment.ProviderStripe
}

// Charge simulates a PaymentIntent confirmed in one step
func (g *MockStripeGateway) Charge(_ context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	txID := "pi_mock_" + randomHex(12)
	result := &payment.ChargeResult{TransactionID: txID, Succeeded: true}

	switch req.Token {
	case DeclineToken:
		result.Succeeded, result.FailureReason = false, mockDeclineMessage
	case InsufficientFundsToken:
		result.Succeeded, result.FailureReason = false, mockInsufficientMessage
	}

	g.logger.Debug("Mock stripe charge",
		zap.String("reference", req.Reference),
		zap.String("transaction_id", txID),
		zap.Bool("succeeded", result.Succeeded))
	return result, nil
}

// MockPayPalGateway approves every charge and issues PAYID- transaction ids
type MockPayPalGateway struct {
	logger *zap.Logger
}

// NewMockPayPalGateway creates the offline PayPal gateway
func NewMockPayPalGateway(logger *zap.Logger) *MockPayPalGateway {
	return &MockPayPalGateway{logger: logger}
}

// Provider returns paypal
func (g *MockPayPalGateway) Provider() payment.Provider {
	return payment.ProviderPayPal
}

// Charge simulates an approved PayPal order capture
func (g *MockPayPalGateway) Charge(_ context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	txID := "PAYID-" + strings.ToUpper(randomHex(12))
	g.logger.Debug("Mock paypal charge",
		zap.String("reference", req.Reference),
		zap.String("transaction_id", txID))
	return &payment.ChargeResult{TransactionID: txID, Succeeded: true}, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

var (
	_ payment.Gateway = (*MockStripeGateway)(nil)
	_ payment.Gateway = (*MockPayPalGateway)(nil)
)
