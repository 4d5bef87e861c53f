package usecase

import (
	"context"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/logger"

	"github.com/cockroachdb/errors"
)

// CartUsecase is the request-facing side of the cart: it resolves products
// from the catalog and bounds quantities before they reach the engine.
type CartUsecase struct {
	registry    *CartRegistry
	productRepo domain.ProductRepository
	maxQuantity int
}

func NewCartUsecase(registry *CartRegistry, productRepo domain.ProductRepository, maxQuantity int) *CartUsecase {
	return &CartUsecase{
		registry:    registry,
		productRepo: productRepo,
		maxQuantity: maxQuantity,
	}
}

func (uc *CartUsecase) Engine(ctx context.Context, profileID string) (*CartEngine, error) {
	return uc.registry.Get(ctx, profileID)
}

func (uc *CartUsecase) GetCart(ctx context.Context, profileID string) (domain.CartView, error) {
	engine, err := uc.registry.Get(ctx, profileID)
	if err != nil {
		return domain.CartView{}, err
	}
	return engine.View(), nil
}

func (uc *CartUsecase) checkQuantity(quantity int) error {
	if quantity < 1 || quantity > uc.maxQuantity {
		return errors.Wrapf(domain.ErrInvalidQuantity, "quantity must be between 1 and %d", uc.maxQuantity)
	}
	return nil
}

// AddItem adds quantity of the catalog product to the cart. The resulting line
// may not exceed the configured maximum.
func (uc *CartUsecase) AddItem(ctx context.Context, profileID string, productID domain.ProductID, quantity int) (domain.CartView, error) {
	if err := uc.checkQuantity(quantity); err != nil {
		return domain.CartView{}, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return domain.CartView{}, err
	}
	engine, err := uc.registry.Get(ctx, profileID)
	if err != nil {
		return domain.CartView{}, err
	}
	for _, item := range engine.Items() {
		if item.ID == productID && item.Quantity+quantity > uc.maxQuantity {
			return domain.CartView{}, errors.Wrapf(domain.ErrInvalidQuantity,
				"cart already holds %d, limit is %d", item.Quantity, uc.maxQuantity)
		}
	}

	engine.AddItem(*product, quantity)
	logger.WithContext(ctx).Debug().
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("Item added to cart")
	return engine.View(), nil
}

// UpdateQuantity sets an absolute quantity. Zero removes the line.
func (uc *CartUsecase) UpdateQuantity(ctx context.Context, profileID string, productID domain.ProductID, quantity int) (domain.CartView, error) {
	if quantity != 0 {
		if err := uc.checkQuantity(quantity); err != nil {
			return domain.CartView{}, err
		}
	}
	engine, err := uc.registry.Get(ctx, profileID)
	if err != nil {
		return domain.CartView{}, err
	}
	engine.UpdateQuantity(productID, quantity)
	return engine.View(), nil
}

func (uc *CartUsecase) RemoveItem(ctx context.Context, profileID string, productID domain.ProductID) (domain.CartView, error) {
	engine, err := uc.registry.Get(ctx, profileID)
	if err != nil {
		return domain.CartView{}, err
	}
	engine.RemoveItem(productID)
	return engine.View(), nil
}

func (uc *CartUsecase) ClearCart(ctx context.Context, profileID string) (domain.CartView, error) {
	engine, err := uc.registry.Get(ctx, profileID)
	if err != nil {
		return domain.CartView{}, err
	}
	engine.ClearCart()
	return engine.View(), nil
}
