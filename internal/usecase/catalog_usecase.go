package usecase

import (
	"context"
	"fmt"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/cache"

	"github.com/cockroachdb/errors"
)

type CatalogUsecase struct {
	repo  domain.ProductRepository
	cache cache.CacheService
	ttl   time.Duration
}

func NewCatalogUsecase(repo domain.ProductRepository, cache cache.CacheService, ttl time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

func (u *CatalogUsecase) allProducts(ctx context.Context) ([]domain.Product, error) {
	return cache.GetOrLoad(u.cache, "product:list:all", u.ttl, func() ([]domain.Product, error) {
		products, err := u.repo.List(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch products")
		}
		return products, nil
	})
}

// ListProducts filters and sorts the catalog like the collection pages do.
func (u *CatalogUsecase) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	products, err := u.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, q), nil
}

func (u *CatalogUsecase) GetProductDetails(ctx context.Context, slug string) (*domain.Product, error) {
	return cache.GetOrLoad(u.cache, fmt.Sprintf("product:slug:%s", slug), u.ttl, func() (*domain.Product, error) {
		return u.repo.GetBySlug(ctx, slug)
	})
}

func (u *CatalogUsecase) GetProductByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	return u.repo.GetByID(ctx, id)
}
