package payment

import (
	"context"
	"fmt"

	"github.com/podplatform/backend/internal/domain/payment"
	"github.com/podplatform/backend/internal/domain/siteconfig"
	"go.uber.org/zap"
)

// ConfigLoader reads the stored payment settings with secrets unmasked
type ConfigLoader interface {
	LoadPaymentConfig(ctx context.Context) (siteconfig.PaymentConfig, error)
}

// StripeFactory builds a live Stripe gateway for a secret key
type StripeFactory func(secretKey string) (payment.Gateway, error)

// Registry resolves the gateway for a payment method from the current
// payment settings. Settings are read on every call so admin changes take
// effect without a restart.
type Registry struct {
	config     ConfigLoader
	stripeLive bool
	newStripe  StripeFactory
	mockStripe payment.Gateway
	paypal     payment.Gateway
	logger     *zap.Logger
}

// NewRegistry creates the resolver. Live Stripe is used only when stripeLive
// is set and a secret key is stored; PayPal is always the mock.
func NewRegistry(config ConfigLoader, stripeLive bool, logger *zap.Logger) *Registry {
	return &Registry{
		config:     config,
		stripeLive: stripeLive,
		newStripe: func(key string) (payment.Gateway, error) {
			return NewStripeGateway(key, logger)
		},
		mockStripe: NewMockStripeGateway(logger),
		paypal:     NewMockPayPalGateway(logger),
		logger:     logger,
	}
}

// WithStripeFactory replaces how live Stripe gateways are built
func (r *Registry) WithStripeFactory(f StripeFactory) *Registry {
	r.newStripe = f
	return r
}

// Resolve returns the gateway for method, or ErrMethodDisabled when its
// provider is switched off
func (r *Registry) Resolve(ctx context.Context, method payment.Method) (payment.Gateway, error) {
	if !method.IsValid() {
		return nil, payment.ErrInvalidMethod
	}
	cfg, err := r.config.LoadPaymentConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payment config: %w", err)
	}

	switch method.Provider() {
	case payment.ProviderStripe:
		if !cfg.StripeEnabled {
			return nil, payment.ErrMethodDisabled
		}
		if r.stripeLive && cfg.StripeSecretKey != "" {
			gw, err := r.newStripe(cfg.StripeSecretKey)
			if err != nil {
				r.logger.Warn("Stored Stripe key unusable", zap.Error(err))
				return nil, payment.ErrGatewayNotFound
			}
			return gw, nil
		}
		return r.mockStripe, nil
	case payment.ProviderPayPal:
		if !cfg.PayPalEnabled {
			return nil, payment.ErrMethodDisabled
		}
		return r.paypal, nil
	}
	return nil, payment.ErrGatewayNotFound
}

var _ payment.GatewayResolver = (*Registry)(nil)
