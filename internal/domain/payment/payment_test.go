package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, v int64) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoney(decimal.NewFromInt(v), valueobject.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" PayPal ")
	require.NoError(t, err)
	assert.Equal(t, MethodPayPal, m)
	assert.Equal(t, ProviderPayPal, m.Provider())

	m, err = ParseMethod("credit_card")
	require.NoError(t, err)
	assert.Equal(t, ProviderStripe, m.Provider())

	_, err = ParseMethod("bitcoin")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(uuid.New(), money(t, 50), MethodCreditCard)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)

	_, err = NewPayment(uuid.New(), valueobject.Zero(""), MethodCreditCard)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPayment(uuid.New(), money(t, 1), Method("cash"))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestPaymentLifecycle(t *testing.T) {
	p, err := NewPayment(uuid.New(), money(t, 50), MethodPayPal)
	require.NoError(t, err)

	require.NoError(t, p.Complete("PAYID-ABC"))
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, "PAYID-ABC", p.TransactionID)
	assert.ErrorIs(t, p.Fail("", "late"), ErrAlreadyFinalised)

	f, err := NewPayment(uuid.New(), money(t, 50), MethodCreditCard)
	require.NoError(t, err)
	require.NoError(t, f.Fail("pi_1", "card_declined"))
	assert.Equal(t, StatusFailed, f.Status)
	assert.Equal(t, "card_declined", f.FailureReason)
	assert.ErrorIs(t, f.Complete("pi_1"), ErrAlreadyFinalised)
}
