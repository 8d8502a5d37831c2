package siteconfig

import (
	"strconv"
	"strings"
)

// PaymentGroup is the settings group holding processor credentials
const PaymentGroup = "payment"

// Payment setting keys
const (
	KeyStripeEnabled   = "payment.stripe.enabled"
	KeyStripePublicKey = "payment.stripe.public_key"
	KeyStripeSecretKey = "payment.stripe.secret_key"
	KeyPayPalEnabled   = "payment.paypal.enabled"
	KeyPayPalClientID  = "payment.paypal.client_id"
	KeyPayPalSecret    = "payment.paypal.secret"
)

// PaymentConfig is the typed view of the payment settings group
type PaymentConfig struct {
	StripeEnabled   bool   `json:"stripe_enabled"`
	StripePublicKey string `json:"stripe_public_key"`
	StripeSecretKey string `json:"stripe_secret_key"`
	PayPalEnabled   bool   `json:"paypal_enabled"`
	PayPalClientID  string `json:"paypal_client_id"`
	PayPalSecret    string `json:"paypal_secret"`
}

// DefaultPaymentConfig enables both mock processors with no credentials
func DefaultPaymentConfig() PaymentConfig {
	return PaymentConfig{StripeEnabled: true, PayPalEnabled: true}
}

// PaymentConfigFromSettings reads the payment group. Missing keys keep
// their DefaultPaymentConfig value.
func PaymentConfigFromSettings(settings []Setting) PaymentConfig {
	cfg := DefaultPaymentConfig()
	for _, s := range settings {
		switch s.Key {
		case KeyStripeEnabled:
			cfg.StripeEnabled = parseBool(s.Value, cfg.StripeEnabled)
		case KeyStripePublicKey:
			cfg.StripePublicKey = s.Value
		case KeyStripeSecretKey:
			cfg.StripeSecretKey = s.Value
		case KeyPayPalEnabled:
			cfg.PayPalEnabled = parseBool(s.Value, cfg.PayPalEnabled)
		case KeyPayPalClientID:
			cfg.PayPalClientID = s.Value
		case KeyPayPalSecret:
			cfg.PayPalSecret = s.Value
		}
	}
	return cfg
}

// Settings converts the config into rows for the payment group
func (c PaymentConfig) Settings() []Setting {
	return []Setting{
		{Key: KeyStripeEnabled, Value: strconv.FormatBool(c.StripeEnabled), Group: PaymentGroup, Type: TypeBool, Label: "Stripe Enabled"},
		{Key: KeyStripePublicKey, Value: c.StripePublicKey, Group: PaymentGroup, Type: TypeText, Label: "Stripe Publishable Key"},
		{Key: KeyStripeSecretKey, Value: c.StripeSecretKey, Group: PaymentGroup, Type: TypeSecret, Label: "Stripe Secret Key"},
		{Key: KeyPayPalEnabled, Value: strconv.FormatBool(c.PayPalEnabled), Group: PaymentGroup, Type: TypeBool, Label: "PayPal Enabled"},
		{Key: KeyPayPalClientID, Value: c.PayPalClientID, Group: PaymentGroup, Type: TypeText, Label: "PayPal Client ID"},
		{Key: KeyPayPalSecret, Value: c.PayPalSecret, Group: PaymentGroup, Type: TypeSecret, Label: "PayPal Secret"},
	}
}

// Masked returns a copy safe to send to a browser
func (c PaymentConfig) Masked() PaymentConfig {
	c.StripeSecretKey = MaskSecret(c.StripeSecretKey)
	c.PayPalSecret = MaskSecret(c.PayPalSecret)
	return c
}

// MergeSecrets keeps the stored secret when an update sends back the masked
// value (or nothing) for it
func (c PaymentConfig) MergeSecrets(stored PaymentConfig) PaymentConfig {
	if c.StripeSecretKey == "" || IsMasked(c.StripeSecretKey) {
		c.StripeSecretKey = stored.StripeSecretKey
	}
	if c.PayPalSecret == "" || IsMasked(c.PayPalSecret) {
		c.PayPalSecret = stored.PayPalSecret
	}
	return c
}

const maskRun = "****"

// MaskSecret keeps the first four and last four characters: sk_t****1234.
// Short secrets are fully masked.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return maskRun
	}
	return secret[:4] + maskRun + secret[len(secret)-4:]
}

// IsMasked reports whether v came out of MaskSecret
func IsMasked(v string) bool {
	return strings.Contains(v, maskRun)
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}
