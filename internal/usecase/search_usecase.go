package usecase

import (
	"context"
	"time"

	"aurex-storefront/internal/domain"
)

type searchUsecase struct {
	catalog *CatalogUsecase
	timeout time.Duration
}

func NewSearchUsecase(catalog *CatalogUsecase, timeout time.Duration) domain.SearchUsecase {
	return &searchUsecase{
		catalog: catalog,
		timeout: timeout,
	}
}

func (u *searchUsecase) Search(ctx context.Context, query string, page, limit int) ([]domain.Product, domain.Pagination, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	products, err := u.catalog.allProducts(ctx)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	matches := make([]domain.Product, 0)
	for _, p := range products {
		if MatchesSearch(p, query) {
			matches = append(matches, p)
		}
	}
	total := int64(len(matches))

	if offset > len(matches) {
		offset = len(matches)
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	pagination := domain.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return matches[offset:end], pagination, nil
}
