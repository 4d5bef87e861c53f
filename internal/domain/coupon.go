package domain

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// CouponType is a closed set: percent or fixed.
type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponFixed   CouponType = "fixed"
)

// ParseCouponType normalises s. "percentage" is accepted as an alias of percent.
func ParseCouponType(s string) (CouponType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percent", "percentage":
		return CouponPercent, nil
	case "fixed":
		return CouponFixed, nil
	}
	return "", errors.Wrapf(ErrUnknownCouponType, "%q", s)
}

func (t CouponType) Valid() bool {
	return t == CouponPercent || t == CouponFixed
}

func (t CouponType) String() string {
	return string(t)
}

// UnmarshalText rejects anything outside the variant, so an unknown type can
// never be decoded from storage or a request body.
func (t *CouponType) UnmarshalText(text []byte) error {
	parsed, err := ParseCouponType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Coupon is an active discount attached to a cart.
type Coupon struct {
	Code  string          `json:"code"`
	Type  CouponType      `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// NewCoupon builds a coupon with an upper-cased, trimmed code.
func NewCoupon(code string, typ CouponType, value decimal.Decimal) Coupon {
	return Coupon{
		Code:  NormalizeCouponCode(code),
		Type:  typ,
		Value: value,
	}
}

func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// UnmarshalJSON keeps the code normalised whatever the stored casing was.
func (c *Coupon) UnmarshalJSON(data []byte) error {
	type raw Coupon
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = Coupon(r)
	c.Code = NormalizeCouponCode(c.Code)
	return nil
}

// DiscountOn returns the currency amount this coupon takes off subtotal.
// A fixed discount never exceeds the subtotal. Types outside the variant
// discount nothing.
func (c Coupon) DiscountOn(subtotal decimal.Decimal) decimal.Decimal {
	switch c.Type {
	case CouponPercent:
		return subtotal.Mul(c.Value).Div(decimal.NewFromInt(100))
	case CouponFixed:
		return decimal.Min(c.Value, subtotal)
	default:
		return decimal.Zero
	}
}

// CouponRule is an entry of the known coupon list that shoppers may redeem.
type CouponRule struct {
	Code        string          `json:"code"`
	Type        CouponType      `json:"type"`
	Value       decimal.Decimal `json:"value"`
	MinSpend    decimal.Decimal `json:"minSpend"`
	Active      bool            `json:"active"`
	Description string          `json:"description,omitempty"`
}

func (r CouponRule) Coupon() Coupon {
	return NewCoupon(r.Code, r.Type, r.Value)
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*CouponRule, error)
	List(ctx context.Context) ([]CouponRule, error)
}
