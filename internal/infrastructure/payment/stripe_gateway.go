package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/podplatform/backend/internal/domain/payment"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"
)

// defaultTestPaymentMethod is Stripe's always-approved test card, used when
// a test-mode charge arrives without a client token
const defaultTestPaymentMethod = "pm_card_visa"

// StripeGateway charges cards through Stripe PaymentIntents, confirming in
// the same call
type StripeGateway struct {
	client paymentintent.Client
	live   bool
	logger *zap.Logger
}

// StripeOption configures a StripeGateway
type StripeOption func(*StripeGateway)

// WithStripeBackend replaces the HTTP backend, used by tests
func WithStripeBackend(b stripe.Backend) StripeOption {
	return func(g *StripeGateway) { g.client.B = b }
}

// NewStripeGateway creates a gateway bound to secretKey. The key is kept on
// the client rather than the package global so settings changes apply to
// the next charge.
func NewStripeGateway(secretKey string, logger *zap.Logger, opts ...StripeOption) (*StripeGateway, error) {
	if !strings.HasPrefix(secretKey, "sk_test_") && !strings.HasPrefix(secretKey, "sk_live_") &&
		!strings.HasPrefix(secretKey, "rk_test_") && !strings.HasPrefix(secretKey, "rk_live_") {
		return nil, fmt.Errorf("stripe: secret key must start with sk_ or rk_")
	}
	g := &StripeGateway{
		client: paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		live:   strings.Contains(secretKey, "_live_"),
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Provider returns stripe
func (g *StripeGateway) Provider() payment.Provider {
	return payment.ProviderStripe
}

// Charge creates and confirms a PaymentIntent. Card errors are declines;
// anything else means Stripe could not decide.
func (g *StripeGateway) Charge(ctx context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	pm := req.Token
	if pm == "" {
		if g.live {
			return &payment.ChargeResult{FailureReason: "A payment method is required"}, nil
		}
		pm = defaultTestPaymentMethod
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount.MinorUnits()),
		Currency:      stripe.String(strings.ToLower(string(req.Amount.Currency()))),
		PaymentMethod: stripe.String(pm),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String("Order " + req.Reference),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", req.OrderID.String())
	params.AddMetadata("reference", req.Reference)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := g.client.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			result := &payment.ChargeResult{FailureReason: stripeErr.Msg}
			if stripeErr.PaymentIntent != nil {
				result.TransactionID = stripeErr.PaymentIntent.ID
			}
			g.logger.Info("Stripe declined charge",
				zap.String("reference", req.Reference),
				zap.String("decline_code", string(stripeErr.DeclineCode)))
			return result, nil
		}
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &payment.ChargeResult{
			TransactionID: pi.ID,
			FailureReason: fmt.Sprintf("Payment not completed (%s)", pi.Status),
		}, nil
	}
	return &payment.ChargeResult{TransactionID: pi.ID, Succeeded: true}, nil
}

var _ payment.Gateway = (*StripeGateway)(nil)
