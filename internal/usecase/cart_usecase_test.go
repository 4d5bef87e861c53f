package usecase

import (
	"context"
	"testing"

	"aurex-storefront/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartUsecase(t *testing.T, maxQuantity int) (*CartUsecase, *CartRegistry) {
	t.Helper()
	registry := NewCartRegistry(newFakeCartRepo())
	t.Cleanup(func() { registry.Close(context.Background()) })
	return NewCartUsecase(registry, bundledProducts(t), maxQuantity), registry
}

func TestCartUsecase_AddItem(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCartUsecase(t, 5)

	view, err := uc.AddItem(ctx, "p1", "1", 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Aurex Titan Chrono", view.Items[0].Name)
	assertMoney(t, "9998", view.Subtotal)

	view, err = uc.AddItem(ctx, "p1", "w-6", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Count)
	assertMoney(t, "11297", view.Total)
	assert.Equal(t, uint64(2), view.Version)
}

func TestCartUsecase_AddItemRejects(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCartUsecase(t, 5)

	_, err := uc.AddItem(ctx, "p1", "1", 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = uc.AddItem(ctx, "p1", "1", 6)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = uc.AddItem(ctx, "p1", "999", 1)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))

	_, err = uc.AddItem(ctx, "p1", "1", 4)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "p1", "1", 2)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	view, err := uc.GetCart(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, view.Count)
}

func TestCartUsecase_UpdateRemoveClear(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCartUsecase(t, 99)

	_, err := uc.AddItem(ctx, "p1", "2", 1)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "p1", "8", 1)
	require.NoError(t, err)

	view, err := uc.UpdateQuantity(ctx, "p1", "2", 3)
	require.NoError(t, err)
	assertMoney(t, "6396", view.Subtotal)

	_, err = uc.UpdateQuantity(ctx, "p1", "2", 100)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	view, err = uc.UpdateQuantity(ctx, "p1", "2", 0)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = uc.RemoveItem(ctx, "p1", "8")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = uc.AddItem(ctx, "p1", "8", 2)
	require.NoError(t, err)
	view, err = uc.ClearCart(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Count)
}

func TestCartUsecase_ProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCartUsecase(t, 99)

	_, err := uc.AddItem(ctx, "p1", "1", 1)
	require.NoError(t, err)

	view, err := uc.GetCart(ctx, "p2")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
