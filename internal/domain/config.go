package domain

import "github.com/shopspring/decimal"

// PricingPolicy holds the order-level charges added on top of the cart total.
type PricingPolicy struct {
	ShippingFee           decimal.Decimal `json:"shippingFee"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
	TaxRate               decimal.Decimal `json:"taxRate"`
}

// Shipping is waived once the cart total reaches a positive threshold.
func (p PricingPolicy) Shipping(cartTotal decimal.Decimal) decimal.Decimal {
	if p.FreeShippingThreshold.IsPositive() && cartTotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingFee
}

func (p PricingPolicy) Tax(cartTotal decimal.Decimal) decimal.Decimal {
	return cartTotal.Mul(p.TaxRate).Round(2)
}
