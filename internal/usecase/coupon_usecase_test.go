package usecase

import (
	"context"
	"testing"
	"time"

	"aurex-storefront/internal/domain"
	infracache "aurex-storefront/internal/infrastructure/cache"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoupons() *fakeCoupons {
	return &fakeCoupons{rules: []domain.CouponRule{
		{Code: "AUREX10", Type: domain.CouponPercent, Value: decimal.NewFromInt(10), Active: true},
		{Code: "FLAT500", Type: domain.CouponFixed, Value: decimal.NewFromInt(500), Active: true},
		{Code: "BIGSPEND", Type: domain.CouponFixed, Value: decimal.NewFromInt(300), MinSpend: decimal.NewFromInt(5000), Active: true},
		{Code: "OLD", Type: domain.CouponPercent, Value: decimal.NewFromInt(50), Active: false},
	}}
}

func newCouponUsecase(t *testing.T, coupons domain.CouponRepository) (*CouponUsecase, *CartRegistry) {
	t.Helper()
	registry := NewCartRegistry(newFakeCartRepo())
	t.Cleanup(func() { registry.Close(context.Background()) })
	return NewCouponUsecase(coupons, registry, infracache.NewMemoryCache(time.Minute, 0), time.Minute), registry
}

func TestCouponUsecase_Validate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCouponUsecase(t, testCoupons())
	sub := decimal.NewFromInt(4400)

	c, err := uc.Validate(ctx, " aurex10", sub)
	require.NoError(t, err)
	assert.Equal(t, "AUREX10", c.Code)
	assertMoney(t, "440", c.DiscountOn(sub))

	tests := []struct {
		code string
		want error
	}{
		{"", domain.ErrInvalidCoupon},
		{"NOPE", domain.ErrInvalidCoupon},
		{"OLD", domain.ErrCouponInactive},
		{"BIGSPEND", domain.ErrCouponMinSpend},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := uc.Validate(ctx, tt.code, sub)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	_, err = uc.Validate(ctx, "BIGSPEND", decimal.NewFromInt(5000))
	assert.NoError(t, err)
}

func TestCouponUsecase_CachesLookups(t *testing.T) {
	ctx := context.Background()
	coupons := testCoupons()
	uc, _ := newCouponUsecase(t, coupons)

	for i := 0; i < 3; i++ {
		_, err := uc.Validate(ctx, "FLAT500", decimal.NewFromInt(100))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, coupons.calls)

	// misses are not cached
	uc.Validate(ctx, "NOPE", decimal.Zero)
	uc.Validate(ctx, "NOPE", decimal.Zero)
	assert.Equal(t, 3, coupons.calls)
}

func TestCouponUsecase_ApplyAndRemove(t *testing.T) {
	ctx := context.Background()
	uc, registry := newCouponUsecase(t, testCoupons())

	engine, err := registry.Get(ctx, "p1")
	require.NoError(t, err)
	engine.AddItem(product("a", 2000), 2)
	engine.AddItem(product("b", 400), 1)

	view, err := uc.ApplyToCart(ctx, "p1", "aurex10")
	require.NoError(t, err)
	assertMoney(t, "440", view.Discount)
	assertMoney(t, "3960", view.Total)

	// replacing keeps exactly one coupon
	view, err = uc.ApplyToCart(ctx, "p1", "FLAT500")
	require.NoError(t, err)
	assert.Equal(t, "FLAT500", view.Coupon.Code)
	assertMoney(t, "3900", view.Total)

	// a rejected code leaves the applied one in place
	_, err = uc.ApplyToCart(ctx, "p1", "OLD")
	assert.Error(t, err)
	assert.Equal(t, "FLAT500", engine.Coupon().Code)

	view, err = uc.RemoveFromCart(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, view.Coupon)
	assertMoney(t, "4400", view.Total)
}

func TestCouponUsecase_List(t *testing.T) {
	uc, _ := newCouponUsecase(t, testCoupons())

	rules, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 3)
	for _, r := range rules {
		assert.True(t, r.Active)
	}
}
