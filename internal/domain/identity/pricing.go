package identity

import (
	"fmt"
	"sort"

	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Material is a printable substrate with a per-unit price
type Material string

const (
	MaterialNonWoven        Material = "non-woven"
	MaterialTextured        Material = "textured"
	MaterialPeelStick       Material = "peel-stick"
	MaterialDeluxeTextile   Material = "deluxe-textile"
	MaterialCanvasPeelStick Material = "canvas-peel-stick"
)

var defaultMaterialPrices = map[Material]decimal.Decimal{
	MaterialNonWoven:        decimal.NewFromInt(11),
	MaterialTextured:        decimal.NewFromInt(13),
	MaterialPeelStick:       decimal.NewFromInt(14),
	MaterialDeluxeTextile:   decimal.NewFromInt(15),
	MaterialCanvasPeelStick: decimal.NewFromInt(18),
}

// DefaultMaterialPrices returns a copy of the list prices
func DefaultMaterialPrices() map[Material]decimal.Decimal {
	out := make(map[Material]decimal.Decimal, len(defaultMaterialPrices))
	for k, v := range defaultMaterialPrices {
		out[k] = v
	}
	return out
}

// Materials lists the known materials in a stable order
func Materials() []Material {
	out := make([]Material, 0, len(defaultMaterialPrices))
	for k := range defaultMaterialPrices {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsValid reports whether m is a known material
func (m Material) IsValid() bool {
	_, ok := defaultMaterialPrices[m]
	return ok
}

// Pricing holds the per-customer commercial terms an admin can set
type Pricing struct {
	DiscountPercentage    decimal.Decimal
	CustomPrices          map[Material]decimal.Decimal
	AllowOnAccountPayment bool
}

// DefaultPricing is list price, no discount, prepaid only
func DefaultPricing() Pricing {
	return Pricing{DiscountPercentage: decimal.Zero}
}

// Validate checks the discount range and custom price keys
func (p Pricing) Validate() error {
	if p.DiscountPercentage.IsNegative() || p.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_INPUT", "Discount percentage must be between 0 and 100")
	}
	for material, price := range p.CustomPrices {
		if !material.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown material: %s", material))
		}
		if price.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Price for %s cannot be negative", material))
		}
	}
	return nil
}

// UnitPrice returns the customer's price for a material: the custom price
// when set, otherwise the list price
func (p Pricing) UnitPrice(m Material) (decimal.Decimal, bool) {
	if price, ok := p.CustomPrices[m]; ok {
		return price, true
	}
	price, ok := defaultMaterialPrices[m]
	return price, ok
}
