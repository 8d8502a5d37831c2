package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{"", DefaultCurrency, false},
		{"usd", "USD", false},
		{" eur ", "EUR", false},
		{"dollars", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCurrency(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney(t *testing.T) {
	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(-1), DefaultCurrency)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("rounds to cents", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("10.005"), DefaultCurrency)
		require.NoError(t, err)
		assert.Equal(t, "10.01", m.Amount().StringFixed(2))
		assert.Equal(t, int64(1001), m.MinorUnits())
	})

	t.Run("applies discount", func(t *testing.T) {
		m, _ := NewMoney(decimal.NewFromInt(200), DefaultCurrency)
		assert.Equal(t, "170.00", m.ApplyDiscount(decimal.NewFromInt(15)).Amount().StringFixed(2))
		assert.True(t, m.ApplyDiscount(decimal.NewFromInt(150)).IsZero())
		assert.Equal(t, m, m.ApplyDiscount(decimal.Zero))
	})

	t.Run("add requires matching currency", func(t *testing.T) {
		a, _ := NewMoney(decimal.NewFromInt(1), "USD")
		b, _ := NewMoney(decimal.NewFromInt(1), "EUR")
		_, err := a.Add(b)
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})

	t.Run("string form", func(t *testing.T) {
		assert.Equal(t, "0.00 USD", Zero("").String())
	})
}

func TestNewRecipient(t *testing.T) {
	r, err := NewRecipient(" John Doe ", "john.doe@example.com", "123 Maple Avenue", "Springfield", "IL", "62704", "US")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", r.Name)
	assert.Equal(t, "123 Maple Avenue, Springfield, IL, 62704, US", r.SingleLine())

	_, err = NewRecipient("", "", "a", "b", "", "1", "US")
	assert.ErrorIs(t, err, ErrRecipientNameRequired)

	_, err = NewRecipient("A", "not-an-email", "a", "b", "", "1", "US")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewRecipient("A", "", "a", "b", "", "1", "")
	assert.ErrorIs(t, err, ErrCountryRequired)
}
