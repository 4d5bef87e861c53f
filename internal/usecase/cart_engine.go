package usecase

import (
	"context"
	"sync"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/logger"

	"github.com/shopspring/decimal"
)

// CartEngine owns one profile's cart. All operations are total: they never
// fail and never block on storage. Each mutation hands a snapshot to the
// background writer and then notifies subscribers.
type CartEngine struct {
	profileID string

	mu      sync.RWMutex
	cart    *domain.Cart
	version uint64

	writer *snapshotWriter

	subsMu  sync.RWMutex
	subs    map[int]func(domain.CartView)
	nextSub int
}

// NewCartEngine starts an engine from initial (an empty cart when nil). A nil
// repo gives an engine that keeps state in memory only.
func NewCartEngine(profileID string, initial *domain.Cart, repo domain.CartRepository) *CartEngine {
	if initial == nil {
		initial = domain.NewCart()
	}
	e := &CartEngine{
		profileID: profileID,
		cart:      initial.Clone(),
		subs:      make(map[int]func(domain.CartView)),
	}
	if repo != nil {
		e.writer = newSnapshotWriter(profileID, repo)
	}
	return e
}

func (e *CartEngine) ProfileID() string {
	return e.profileID
}

// mutate applies fn under the write lock, then persists and publishes the
// result outside it.
func (e *CartEngine) mutate(fn func(c *domain.Cart)) {
	e.mu.Lock()
	fn(e.cart)
	e.version++
	ver := e.version
	snapshot := e.cart.Clone()
	view := e.cart.View()
	e.mu.Unlock()

	view.Version = ver
	if e.writer != nil {
		e.writer.Submit(ver, snapshot)
	}
	e.publish(view)
}

// AddItem merges quantity into the line for p, or appends a snapshot of p.
// Lines never hold less than one unit: a non-positive quantity for a new
// product is ignored, and a merge that reaches zero removes the line.
func (e *CartEngine) AddItem(p domain.Product, quantity int) {
	e.mutate(func(c *domain.Cart) { c.AddItem(p, quantity) })
}

func (e *CartEngine) RemoveItem(id domain.ProductID) {
	e.mutate(func(c *domain.Cart) { c.RemoveItem(id) })
}

func (e *CartEngine) UpdateQuantity(id domain.ProductID, quantity int) {
	e.mutate(func(c *domain.Cart) { c.UpdateQuantity(id, quantity) })
}

// SetCoupon replaces the active coupon without validating it. Nil clears.
func (e *CartEngine) SetCoupon(coupon *domain.Coupon) {
	if coupon != nil && !coupon.Type.Valid() {
		l := logger.WithProfileID(*logger.Get(), e.profileID)
		l.Warn().
			Str("code", coupon.Code).
			Str("type", coupon.Type.String()).
			Msg("Coupon type not recognised, it will discount nothing")
	}
	e.mutate(func(c *domain.Cart) { c.SetCoupon(coupon) })
}

// ClearCart empties items and drops the coupon in one step.
func (e *CartEngine) ClearCart() {
	e.mutate(func(c *domain.Cart) { c.Clear() })
}

func (e *CartEngine) Items() []domain.LineItem {
	return e.Snapshot().Items
}

func (e *CartEngine) Coupon() *domain.Coupon {
	return e.Snapshot().Coupon
}

// Snapshot returns a deep copy of the current cart.
func (e *CartEngine) Snapshot() *domain.Cart {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cart.Clone()
}

func (e *CartEngine) View() domain.CartView {
	e.mu.RLock()
	defer e.mu.RUnlock()
	view := e.cart.View()
	view.Version = e.version
	return view
}

func (e *CartEngine) Subtotal() decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cart.Subtotal()
}

func (e *CartEngine) Discount() decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cart.Discount()
}

func (e *CartEngine) Total() decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cart.Total()
}

func (e *CartEngine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cart.Count()
}

// Subscribe registers fn to receive a view after every mutation. fn runs on
// the mutating goroutine after the engine lock is released, so it may read
// the engine but should return quickly.
func (e *CartEngine) Subscribe(fn func(domain.CartView)) (unsubscribe func()) {
	e.subsMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.subsMu.Lock()
			delete(e.subs, id)
			e.subsMu.Unlock()
		})
	}
}

func (e *CartEngine) publish(view domain.CartView) {
	e.subsMu.RLock()
	fns := make([]func(domain.CartView), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subsMu.RUnlock()

	for _, fn := range fns {
		fn(view)
	}
}

// Flush blocks until the latest snapshot is stored and reports any failure.
func (e *CartEngine) Flush(ctx context.Context) error {
	if e.writer == nil {
		return nil
	}
	return e.writer.Flush(ctx)
}

// Close stops the background writer after a final flush.
func (e *CartEngine) Close(ctx context.Context) error {
	if e.writer == nil {
		return nil
	}
	return e.writer.Close(ctx)
}
