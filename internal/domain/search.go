package domain

import "context"

type SearchUsecase interface {
	Search(ctx context.Context, query string, page, limit int) ([]Product, Pagination, error)
}
