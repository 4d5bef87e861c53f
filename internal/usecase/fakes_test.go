package usecase

import (
	"context"
	"sync"
	"testing"

	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/repository/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func product(id string, price int64) domain.Product {
	return domain.Product{ID: domain.ProductID(id), Slug: "watch-" + id, Name: "Watch " + id, Price: decimal.NewFromInt(price)}
}

func bundledProducts(t *testing.T) domain.ProductRepository {
	t.Helper()
	repo, err := catalog.NewProductRepository("")
	require.NoError(t, err)
	return repo
}

// fakeCartRepo is an in-memory CartRepository whose failures and latency
// tests can control.
type fakeCartRepo struct {
	mu      sync.Mutex
	carts   map[string]*domain.Cart
	saves   int
	saveErr error
	loadErr error
	gate    chan struct{}
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*domain.Cart{}}
}

func (f *fakeCartRepo) Load(ctx context.Context, profileID string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	c, ok := f.carts[profileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Clone(), nil
}

func (f *fakeCartRepo) Save(ctx context.Context, profileID string, cart *domain.Cart) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.carts[profileID] = cart.Clone()
	return nil
}

func (f *fakeCartRepo) setSaveErr(err error) {
	f.mu.Lock()
	f.saveErr = err
	f.mu.Unlock()
}

func (f *fakeCartRepo) stored(profileID string) *domain.Cart {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[profileID]
	if !ok {
		return nil
	}
	return c.Clone()
}

func (f *fakeCartRepo) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, req PaymentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type memOrders struct {
	mu     sync.Mutex
	orders map[string][]domain.Order
	err    error
}

func newMemOrders() *memOrders {
	return &memOrders{orders: map[string][]domain.Order{}}
}

func (m *memOrders) Append(ctx context.Context, profileID string, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders[profileID] = append([]domain.Order{order}, m.orders[profileID]...)
	return nil
}

func (m *memOrders) List(ctx context.Context, profileID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Order{}, m.orders[profileID]...), nil
}

type fakeCoupons struct {
	rules []domain.CouponRule
	calls int
}

func (f *fakeCoupons) FindByCode(ctx context.Context, code string) (*domain.CouponRule, error) {
	f.calls++
	for _, r := range f.rules {
		if r.Code == code {
			found := r
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCoupons) List(ctx context.Context) ([]domain.CouponRule, error) {
	return f.rules, nil
}
