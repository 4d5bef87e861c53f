package domain

// Payment Methods
const (
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
	PaymentMethodCOD  = "cod"
)

var PaymentMethods = []string{
	PaymentMethodCard,
	PaymentMethodUPI,
	PaymentMethodCOD,
}

func IsPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// Storage keys. One record of each kind per browser profile.
const (
	CartKeyPrefix     = "aurex-cart"
	WishlistKeyPrefix = "aurex-wishlist"
	OrdersKeyPrefix   = "aurex-orders"
)

func CartKey(profileID string) string     { return CartKeyPrefix + ":" + profileID }
func WishlistKey(profileID string) string { return WishlistKeyPrefix + ":" + profileID }
func OrdersKey(profileID string) string   { return OrdersKeyPrefix + ":" + profileID }

var Genders = []string{"men", "women", "unisex"}
var Straps = []string{"silicone", "steel", "leather", "nylon"}
var WatchTypes = []string{"analog", "digital", "analog-digital", "chronograph"}
