package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// --- Checkout ---

type CheckoutStatus string

const (
	CheckoutIdle       CheckoutStatus = "idle"
	CheckoutProcessing CheckoutStatus = "processing"
	CheckoutSuccess    CheckoutStatus = "success"
	CheckoutFailure    CheckoutStatus = "failure"
)

// --- Order Entities ---

// Order is written once per successful checkout and never modified.
type Order struct {
	ID            string          `json:"id"`
	Items         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	CouponCode    string          `json:"couponCode,omitempty"`
	Shipping      decimal.Decimal `json:"shipping"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	Date          time.Time       `json:"date"`
}

// --- Interfaces ---

// OrderRepository keeps each profile's orders most-recent-first.
type OrderRepository interface {
	Append(ctx context.Context, profileID string, order Order) error
	List(ctx context.Context, profileID string) ([]Order, error)
}
