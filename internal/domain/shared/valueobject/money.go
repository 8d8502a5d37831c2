package valueobject

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code
type Currency string

// DefaultCurrency is used whenever an order or payment does not name one
const DefaultCurrency Currency = "USD"

var (
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrInvalidCurrency  = errors.New("currency must be a three letter code")
)

// ParseCurrency normalises a currency code, defaulting to USD when empty
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	return Currency(code), nil
}

// Money is an immutable non-negative amount in a currency
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a Money value rounded to cents
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount.Round(2), currency: currency}, nil
}

// Zero returns a zero amount in the currency
func Zero(currency Currency) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add sums two amounts in the same currency
func (m Money) Add(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.Currency()}, nil
}

// ApplyDiscount takes percent (0..100) off the amount, rounded to cents
func (m Money) ApplyDiscount(percent decimal.Decimal) Money {
	if !percent.IsPositive() {
		return m
	}
	if percent.GreaterThan(decimal.NewFromInt(100)) {
		percent = decimal.NewFromInt(100)
	}
	factor := decimal.NewFromInt(100).Sub(percent).Div(decimal.NewFromInt(100))
	return Money{amount: m.amount.Mul(factor).Round(2), currency: m.Currency()}
}

// MinorUnits returns the amount in cents, as payment providers expect
func (m Money) MinorUnits() int64 {
	return m.amount.Shift(2).Round(0).IntPart()
}

// String renders "12.50 USD"
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + string(m.Currency())
}
