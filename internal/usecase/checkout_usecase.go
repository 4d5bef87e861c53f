package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/clock"
	"aurex-storefront/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	OrderID   string
	ProfileID string
	Method    string
	Amount    decimal.Decimal
}

// PaymentGateway charges a shopper. A nil error means the payment succeeded.
type PaymentGateway interface {
	Charge(ctx context.Context, req PaymentRequest) error
}

// SimulatedGateway stands in for a payment provider: it waits, then fails a
// configurable fraction of charges.
type SimulatedGateway struct {
	delay       time.Duration
	failureRate float64
	roll        func() float64
}

func NewSimulatedGateway(delay time.Duration, failureRate float64) *SimulatedGateway {
	return &SimulatedGateway{delay: delay, failureRate: failureRate, roll: rand.Float64}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req PaymentRequest) error {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "payment interrupted")
		}
	}
	if g.failureRate > 0 && g.roll() < g.failureRate {
		return errors.Newf("%s payment of %s declined", req.Method, req.Amount.StringFixed(2))
	}
	return nil
}

// CheckoutResult is the outcome of the latest checkout of a profile.
type CheckoutResult struct {
	Status domain.CheckoutStatus `json:"status"`
	Order  *domain.Order         `json:"order,omitempty"`
	Reason string                `json:"reason,omitempty"`
}

// CheckoutUsecase turns a cart into an order. A profile has at most one
// checkout in flight.
type CheckoutUsecase struct {
	carts     *CartRegistry
	orderRepo domain.OrderRepository
	gateway   PaymentGateway
	pricing   domain.PricingPolicy
	clock     clock.Clock

	mu     sync.Mutex
	status map[string]CheckoutResult
}

func NewCheckoutUsecase(carts *CartRegistry, orderRepo domain.OrderRepository, gateway PaymentGateway, pricing domain.PricingPolicy, clk clock.Clock) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:     carts,
		orderRepo: orderRepo,
		gateway:   gateway,
		pricing:   pricing,
		clock:     clk,
		status:    make(map[string]CheckoutResult),
	}
}

// Status reports the latest checkout outcome, idle when there has been none.
func (uc *CheckoutUsecase) Status(profileID string) CheckoutResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if res, ok := uc.status[profileID]; ok {
		return res
	}
	return CheckoutResult{Status: domain.CheckoutIdle}
}

func (uc *CheckoutUsecase) begin(profileID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.status[profileID].Status == domain.CheckoutProcessing {
		return domain.ErrCheckoutInProgress
	}
	uc.status[profileID] = CheckoutResult{Status: domain.CheckoutProcessing}
	return nil
}

func (uc *CheckoutUsecase) finish(profileID string, res CheckoutResult) CheckoutResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if res.Status == domain.CheckoutIdle {
		delete(uc.status, profileID)
	} else {
		uc.status[profileID] = res
	}
	return res
}

// PriceOrder builds the order a cart would produce, without charging or saving it.
func (uc *CheckoutUsecase) PriceOrder(cart *domain.Cart, paymentMethod string) domain.Order {
	total := cart.Total()
	shipping := uc.pricing.Shipping(total)
	tax := uc.pricing.Tax(total)
	now := uc.clock.Now()

	order := domain.Order{
		ID:            fmt.Sprintf("ORD-%d", now.UnixMilli()),
		Items:         cart.Clone().Items,
		Subtotal:      cart.Subtotal(),
		Discount:      cart.Discount(),
		Shipping:      shipping,
		Tax:           tax,
		Total:         total.Add(shipping).Add(tax),
		PaymentMethod: paymentMethod,
		Date:          now.UTC(),
	}
	if cart.Coupon != nil {
		order.CouponCode = cart.Coupon.Code
	}
	return order
}

// Checkout charges the profile's cart and records the order. On success the
// cart is cleared; on failure it is left exactly as it was.
func (uc *CheckoutUsecase) Checkout(ctx context.Context, profileID, paymentMethod string) (CheckoutResult, error) {
	if !domain.IsPaymentMethod(paymentMethod) {
		return CheckoutResult{}, errors.Wrapf(domain.ErrInvalidPaymentMethod, "%q", paymentMethod)
	}
	if err := uc.begin(profileID); err != nil {
		return CheckoutResult{}, err
	}

	log := logger.WithProfileID(*logger.WithContext(ctx), profileID)

	engine, err := uc.carts.Get(ctx, profileID)
	if err != nil {
		uc.finish(profileID, CheckoutResult{Status: domain.CheckoutIdle})
		return CheckoutResult{}, err
	}
	cart := engine.Snapshot()
	if len(cart.Items) == 0 {
		uc.finish(profileID, CheckoutResult{Status: domain.CheckoutIdle})
		return CheckoutResult{}, domain.ErrEmptyCart
	}

	order := uc.PriceOrder(cart, paymentMethod)

	fail := func(err error) (CheckoutResult, error) {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("Checkout failed")
		res := uc.finish(profileID, CheckoutResult{Status: domain.CheckoutFailure, Reason: err.Error()})
		return res, errors.Mark(err, domain.ErrPaymentFailed)
	}

	if paymentMethod != domain.PaymentMethodCOD {
		err := uc.gateway.Charge(ctx, PaymentRequest{
			OrderID:   order.ID,
			ProfileID: profileID,
			Method:    paymentMethod,
			Amount:    order.Total,
		})
		if err != nil {
			return fail(err)
		}
	}

	if err := uc.orderRepo.Append(ctx, profileID, order); err != nil {
		return fail(errors.Wrap(err, "failed to record order"))
	}

	engine.ClearCart()
	if err := engine.Flush(ctx); err != nil {
		log.Warn().Err(err).Msg("Cleared cart not yet persisted")
	}

	log.Info().
		Str("order_id", order.ID).
		Str("payment_method", paymentMethod).
		Str("total", order.Total.StringFixed(2)).
		Msg("Order placed")

	return uc.finish(profileID, CheckoutResult{Status: domain.CheckoutSuccess, Order: &order}), nil
}
