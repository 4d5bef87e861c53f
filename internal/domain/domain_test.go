package domain

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductID_UnmarshalJSON(t *testing.T) {
	var ids []ProductID
	require.NoError(t, json.Unmarshal([]byte(`["w-6", 7, 12]`), &ids))
	assert.Equal(t, []ProductID{"w-6", "7", "12"}, ids)

	var bad ProductID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestProduct_Normalize(t *testing.T) {
	p := Product{ID: "1", Price: decimal.NewFromInt(999), Strap: "silicone", Gender: "men", Image: "a.jpg"}
	n := p.Normalize()

	require.True(t, n.DiscountPrice.Valid)
	assertMoney(t, "999", n.DiscountPrice.Decimal)
	assert.Equal(t, DefaultProductStock, n.StockLevel())
	assert.Equal(t, DefaultProductRating, n.RatingValue())
	assert.Equal(t, "silicone", n.StrapType)
	assert.Equal(t, []string{"men", "silicone"}, n.Tags)
	assert.Equal(t, []string{"a.jpg"}, n.Images)

	// the input is untouched
	assert.Nil(t, p.Stock)
}

func TestProduct_StockLevelUnknown(t *testing.T) {
	assert.Equal(t, 1, Product{}.StockLevel())
	zero := 0
	assert.Equal(t, 0, Product{Stock: &zero}.StockLevel())
}

func TestFindPriceRange(t *testing.T) {
	r, ok := FindPriceRange("2000-3500")
	require.True(t, ok)
	assertMoney(t, "2000", r.Min)
	assertMoney(t, "3500", r.Max)

	_, ok = FindPriceRange("nope")
	assert.False(t, ok)
}

func TestPricingPolicy(t *testing.T) {
	p := PricingPolicy{
		ShippingFee:           decimal.NewFromInt(99),
		FreeShippingThreshold: decimal.NewFromInt(2000),
		TaxRate:               decimal.RequireFromString("0.18"),
	}
	assertMoney(t, "99", p.Shipping(decimal.NewFromInt(1999)))
	assertMoney(t, "0", p.Shipping(decimal.NewFromInt(2000)))
	assertMoney(t, "180", p.Tax(decimal.NewFromInt(1000)))
	assertMoney(t, "0.18", p.Tax(decimal.RequireFromString("0.99")))

	var none PricingPolicy
	assertMoney(t, "0", none.Shipping(decimal.NewFromInt(10)))
	assertMoney(t, "0", none.Tax(decimal.NewFromInt(10)))
}

func TestWishlist(t *testing.T) {
	w := NewWishlist()
	a, b := watch("a", 100, 0), watch("b", 200, 0)

	assert.True(t, w.Add(a))
	assert.False(t, w.Add(a))
	assert.True(t, w.Toggle(b))
	assert.True(t, w.Has("b"))
	assert.False(t, w.Toggle(b))
	assert.False(t, w.Has("b"))
	assert.True(t, w.Remove("a"))
	assert.False(t, w.Remove("a"))
	assert.Empty(t, w.Items)
}

func TestProfileContext(t *testing.T) {
	_, ok := ProfileFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithProfile(context.Background(), &Profile{ID: "p1"})
	p, ok := ProfileFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)
}

func TestStorageKeys(t *testing.T) {
	assert.Equal(t, "aurex-cart:p1", CartKey("p1"))
	assert.Equal(t, "aurex-wishlist:p1", WishlistKey("p1"))
	assert.Equal(t, "aurex-orders:p1", OrdersKey("p1"))
	assert.True(t, IsPaymentMethod("upi"))
	assert.False(t, IsPaymentMethod("cash"))
}
