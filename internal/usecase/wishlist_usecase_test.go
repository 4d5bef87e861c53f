package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/repository/kv"
	"aurex-storefront/internal/repository/store"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistUsecase(t *testing.T) {
	ctx := context.Background()
	uc := NewWishlistUsecase(store.NewWishlistStore(kv.NewMemoryStore()), bundledProducts(t))

	w, err := uc.GetMyWishlist(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, w.Items)

	w, err = uc.AddToWishlist(ctx, "p1", "1")
	require.NoError(t, err)
	require.Len(t, w.Items, 1)
	assert.Equal(t, "Aurex Titan Chrono", w.Items[0].Name)

	w, err = uc.AddToWishlist(ctx, "p1", "1")
	require.NoError(t, err)
	assert.Len(t, w.Items, 1)

	_, err = uc.AddToWishlist(ctx, "p1", "nope")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))

	w, inList, err := uc.Toggle(ctx, "p1", "w-6")
	require.NoError(t, err)
	assert.True(t, inList)
	assert.Len(t, w.Items, 2)

	ok, err := uc.IsInWishlist(ctx, "p1", "w-6")
	require.NoError(t, err)
	assert.True(t, ok)

	_, inList, err = uc.Toggle(ctx, "p1", "w-6")
	require.NoError(t, err)
	assert.False(t, inList)

	w, err = uc.RemoveFromWishlist(ctx, "p1", "1")
	require.NoError(t, err)
	assert.Empty(t, w.Items)

	other, err := uc.GetMyWishlist(ctx, "p2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestWishlistUsecase_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	uc := NewWishlistUsecase(store.NewWishlistStore(kv.NewMemoryStore()), bundledProducts(t))

	var wg sync.WaitGroup
	for _, id := range []domain.ProductID{"1", "2", "3", "4", "5", "w-6", "7", "8"} {
		wg.Add(1)
		go func(id domain.ProductID) {
			defer wg.Done()
			_, err := uc.AddToWishlist(ctx, "p1", id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	w, err := uc.GetMyWishlist(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, w.Items, 8)
}

func TestOrderUsecase(t *testing.T) {
	ctx := context.Background()
	repo := store.NewOrderStore(kv.NewMemoryStore())
	uc := NewOrderUsecase(repo)

	orders, err := uc.GetMyOrders(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, orders)

	require.NoError(t, repo.Append(ctx, "p1", domain.Order{ID: "ORD-1", Date: time.Now()}))
	require.NoError(t, repo.Append(ctx, "p1", domain.Order{ID: "ORD-2", Date: time.Now()}))

	order, err := uc.GetOrder(ctx, "p1", "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", order.ID)

	_, err = uc.GetOrder(ctx, "p2", "ORD-1")
	assert.True(t, errors.Is(err, domain.ErrOrderNotFound))
}
