package domain

import "github.com/cockroachdb/errors"

// Sentinel errors shared across layers. Repositories mark their failures with
// these so handlers can classify them with errors.Is.
var (
	// Storage
	ErrNotFound         = errors.New("not found")
	ErrCorruptSnapshot  = errors.New("stored snapshot could not be decoded")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Catalog
	ErrProductNotFound = errors.New("product not found")

	// Cart
	ErrInvalidQuantity = errors.New("invalid quantity")

	// Coupons
	ErrUnknownCouponType = errors.New("unknown coupon type")
	ErrInvalidCoupon     = errors.New("invalid coupon code")
	ErrCouponInactive    = errors.New("coupon is inactive")
	ErrCouponMinSpend    = errors.New("cart does not meet coupon minimum spend")

	// Checkout
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrCheckoutInProgress   = errors.New("checkout already in progress")
	ErrPaymentFailed        = errors.New("payment could not be completed")

	// Orders
	ErrOrderNotFound = errors.New("order not found")
)
