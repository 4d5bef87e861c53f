package usecase

import (
	"context"
	"fmt"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/cache"
	"aurex-storefront/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// CouponUsecase validates codes against the coupon book. It is the only path
// by which a coupon reaches a cart engine.
type CouponUsecase struct {
	couponRepo domain.CouponRepository
	carts      *CartRegistry
	cache      cache.CacheService
	ttl        time.Duration
}

func NewCouponUsecase(couponRepo domain.CouponRepository, carts *CartRegistry, cache cache.CacheService, ttl time.Duration) *CouponUsecase {
	return &CouponUsecase{
		couponRepo: couponRepo,
		carts:      carts,
		cache:      cache,
		ttl:        ttl,
	}
}

func (uc *CouponUsecase) findRule(ctx context.Context, code string) (domain.CouponRule, error) {
	return cache.GetOrLoad(uc.cache, fmt.Sprintf("coupon:code:%s", code), uc.ttl, func() (domain.CouponRule, error) {
		rule, err := uc.couponRepo.FindByCode(ctx, code)
		if err != nil {
			return domain.CouponRule{}, err
		}
		return *rule, nil
	})
}

// Validate checks code against subtotal and returns the coupon to attach.
func (uc *CouponUsecase) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*domain.Coupon, error) {
	code = domain.NormalizeCouponCode(code)
	if code == "" {
		return nil, errors.Wrap(domain.ErrInvalidCoupon, "coupon code is required")
	}

	rule, err := uc.findRule(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errors.Wrapf(domain.ErrInvalidCoupon, "%s", code)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up coupon")
	}

	if !rule.Active {
		return nil, errors.Wrapf(domain.ErrCouponInactive, "%s", code)
	}
	if !rule.Type.Valid() {
		return nil, errors.Wrapf(domain.ErrUnknownCouponType, "%s", code)
	}
	if rule.MinSpend.IsPositive() && subtotal.LessThan(rule.MinSpend) {
		return nil, errors.Wrapf(domain.ErrCouponMinSpend, "%s needs a subtotal of %s", code, rule.MinSpend.StringFixed(2))
	}

	coupon := rule.Coupon()
	return &coupon, nil
}

// ApplyToCart validates code against the cart's current subtotal and attaches
// it, replacing any coupon already applied. A rejected code leaves the cart as it was.
func (uc *CouponUsecase) ApplyToCart(ctx context.Context, profileID, code string) (domain.CartView, error) {
	engine, err := uc.carts.Get(ctx, profileID)
	if err != nil {
		return domain.CartView{}, err
	}
	coupon, err := uc.Validate(ctx, code, engine.Subtotal())
	if err != nil {
		logger.WithContext(ctx).Info().Str("code", code).Err(err).Msg("Coupon rejected")
		return domain.CartView{}, err
	}
	engine.SetCoupon(coupon)
	return engine.View(), nil
}

func (uc *CouponUsecase) RemoveFromCart(ctx context.Context, profileID string) (domain.CartView, error) {
	engine, err := uc.carts.Get(ctx, profileID)
	if err != nil {
		return domain.CartView{}, err
	}
	engine.SetCoupon(nil)
	return engine.View(), nil
}

// List returns the coupons shoppers can currently redeem.
func (uc *CouponUsecase) List(ctx context.Context) ([]domain.CouponRule, error) {
	return cache.GetOrLoad(uc.cache, "coupon:list:active", uc.ttl, func() ([]domain.CouponRule, error) {
		rules, err := uc.couponRepo.List(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list coupons")
		}
		active := make([]domain.CouponRule, 0, len(rules))
		for _, r := range rules {
			if r.Active {
				active = append(active, r)
			}
		}
		return active, nil
	})
}
