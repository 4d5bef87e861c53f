package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/repository/kv"
	"aurex-storefront/internal/repository/store"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartEngine_ShoppingSession(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	engine := NewCartEngine("p1", nil, repo)
	defer engine.Close(ctx)

	a := product("a", 2500)
	a.DiscountPrice = decimal.NewNullDecimal(decimal.NewFromInt(2000))
	b := product("b", 400)

	engine.AddItem(a, 1)
	engine.AddItem(a, 1)
	engine.AddItem(b, 1)
	coupon := domain.NewCoupon("AUREX10", domain.CouponPercent, decimal.NewFromInt(10))
	engine.SetCoupon(&coupon)

	assert.Equal(t, 3, engine.Count())
	assertMoney(t, "4400", engine.Subtotal())
	assertMoney(t, "440", engine.Discount())
	assertMoney(t, "3960", engine.Total())

	engine.UpdateQuantity("a", 0)
	require.Len(t, engine.Items(), 1)
	assertMoney(t, "360", engine.Total())

	require.NoError(t, engine.Flush(ctx))
	stored := repo.stored("p1")
	require.NotNil(t, stored)
	assert.Len(t, stored.Items, 1)
	assert.Equal(t, "AUREX10", stored.Coupon.Code)

	engine.ClearCart()
	assert.Empty(t, engine.Items())
	assert.Nil(t, engine.Coupon())
	require.NoError(t, engine.Flush(ctx))
	assert.Empty(t, repo.stored("p1").Items)
}

func TestCartEngine_RestoresInitialCart(t *testing.T) {
	initial := domain.NewCart()
	initial.AddItem(product("a", 100), 2)

	engine := NewCartEngine("p1", initial, nil)
	initial.AddItem(product("a", 100), 5)

	assert.Equal(t, 2, engine.Count())
	require.NoError(t, engine.Flush(context.Background()))
}

func TestCartEngine_SnapshotIsDetached(t *testing.T) {
	engine := NewCartEngine("p1", nil, nil)
	engine.AddItem(product("a", 100), 1)

	snap := engine.Snapshot()
	snap.Items[0].Quantity = 50
	assert.Equal(t, 1, engine.Count())
}

func TestCartEngine_Subscribe(t *testing.T) {
	engine := NewCartEngine("p1", nil, nil)

	var views []domain.CartView
	unsubscribe := engine.Subscribe(func(v domain.CartView) {
		views = append(views, v)
	})

	engine.AddItem(product("a", 100), 1)
	engine.AddItem(product("a", 100), 2)
	require.Len(t, views, 2)
	assert.Equal(t, uint64(1), views[0].Version)
	assert.Equal(t, uint64(2), views[1].Version)
	assert.Equal(t, 3, views[1].Count)
	assertMoney(t, "300", views[1].Total)

	unsubscribe()
	unsubscribe()
	engine.ClearCart()
	assert.Len(t, views, 2)
	assert.Equal(t, uint64(3), engine.View().Version)
}

func TestCartEngine_SubscriberMayReadEngine(t *testing.T) {
	engine := NewCartEngine("p1", nil, nil)
	var count int
	engine.Subscribe(func(domain.CartView) { count = engine.Count() })

	engine.AddItem(product("a", 100), 4)
	assert.Equal(t, 4, count)
}

func TestCartEngine_ConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	engine := NewCartEngine("p1", nil, repo)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine.AddItem(product("a", 10), 1)
			_ = engine.Total()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, engine.Count())
	require.NoError(t, engine.Close(ctx))
	assert.Equal(t, 50, repo.stored("p1").Count())
}

func TestCartEngine_WritesCoalesce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	repo.gate = make(chan struct{})
	engine := NewCartEngine("p1", nil, repo)

	for i := 0; i < 10; i++ {
		engine.AddItem(product("a", 10), 1)
	}
	close(repo.gate)
	require.NoError(t, engine.Flush(ctx))

	assert.LessOrEqual(t, repo.saveCount(), 2)
	assert.Equal(t, 10, repo.stored("p1").Count())
	require.NoError(t, engine.Close(ctx))
}

func TestCartEngine_StoreFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	repo.setSaveErr(errors.Mark(errors.New("disk full"), domain.ErrStoreUnavailable))
	engine := NewCartEngine("p1", nil, repo)

	engine.AddItem(product("a", 100), 2)
	assert.Equal(t, 2, engine.Count())

	err := engine.Flush(ctx)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.Equal(t, 2, engine.Count())
	assert.Nil(t, repo.stored("p1"))

	// the snapshot is retried once the store recovers
	repo.setSaveErr(nil)
	require.NoError(t, engine.Flush(ctx))
	assert.Equal(t, 2, repo.stored("p1").Count())
	require.NoError(t, engine.Close(ctx))
}

func TestCartEngine_UnknownCouponTypeDiscountsNothing(t *testing.T) {
	engine := NewCartEngine("p1", nil, nil)
	engine.AddItem(product("a", 1000), 1)
	engine.SetCoupon(&domain.Coupon{Code: "ODD", Type: "bogo", Value: decimal.NewFromInt(10)})

	assertMoney(t, "0", engine.Discount())
	assertMoney(t, "1000", engine.Total())
	assert.Equal(t, "ODD", engine.Coupon().Code)
}

func TestCartEngine_PersistedCartRestoresSameTotals(t *testing.T) {
	ctx := context.Background()
	repo := store.NewCartStore(kv.NewMemoryStore())

	for seed := uint64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewPCG(seed, 42))
		profileID := fmt.Sprintf("profile-%d", seed)
		engine := NewCartEngine(profileID, nil, repo)

		for step := 0; step < 5; step++ {
			id := fmt.Sprint(rng.IntN(3))
			switch rng.IntN(3) {
			case 0:
				engine.AddItem(product(id, rng.Int64N(20000)+1), rng.IntN(4)+1)
			case 1:
				engine.UpdateQuantity(domain.ProductID(id), rng.IntN(6)-1)
			default:
				engine.RemoveItem(domain.ProductID(id))
			}
		}
		if rng.IntN(2) == 0 {
			coupon := domain.NewCoupon("FLAT500", domain.CouponFixed, decimal.NewFromInt(500))
			engine.SetCoupon(&coupon)
		}
		require.NoError(t, engine.Close(ctx))

		stored, err := repo.Load(ctx, profileID)
		require.NoError(t, err, "seed %d", seed)
		restored := NewCartEngine(profileID, stored, nil)
		assert.True(t, engine.Total().Equal(restored.Total()), "seed %d: %s != %s", seed, engine.Total(), restored.Total())
		assert.Equal(t, engine.Count(), restored.Count(), "seed %d", seed)
	}
}
