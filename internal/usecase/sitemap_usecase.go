package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/cache"

	"github.com/cockroachdb/errors"
)

type SitemapItem struct {
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   float32
}

// Collection slugs linked from the storefront menu.
var sitemapCollections = []string{
	"men", "women", "unisex",
	"analog-watches", "digital-watches", "analog-digital-watches", "chronograph-watches",
	"leather-watches", "steel-watches", "silicone-watches", "nylon-watches",
	"under-rs-2000", "under-rs-5000",
}

type SitemapUsecase struct {
	productRepo domain.ProductRepository
	baseURL     string
	cache       cache.CacheService
	ttl         time.Duration
}

func NewSitemapUsecase(repo domain.ProductRepository, baseURL string, cache cache.CacheService, ttl time.Duration) *SitemapUsecase {
	return &SitemapUsecase{
		productRepo: repo,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		cache:       cache,
		ttl:         ttl,
	}
}

func (u *SitemapUsecase) GenerateSitemap(ctx context.Context) ([]SitemapItem, error) {
	return cache.GetOrLoad(u.cache, "sitemap:items", u.ttl, func() ([]SitemapItem, error) {
		return u.build(ctx)
	})
}

func (u *SitemapUsecase) build(ctx context.Context) ([]SitemapItem, error) {
	var items []SitemapItem
	now := time.Now().Format("2006-01-02")

	// 1. Static Pages
	statics := []string{"", "/collections", "/accessories", "/cart", "/wishlist"}
	for _, s := range statics {
		items = append(items, SitemapItem{
			Loc:        u.baseURL + s,
			LastMod:    now,
			ChangeFreq: "daily",
			Priority:   0.8,
		})
	}
	// Root has higher priority
	items[0].Priority = 1.0

	// 2. Collections
	for _, slug := range sitemapCollections {
		items = append(items, SitemapItem{
			Loc:        fmt.Sprintf("%s/collections/%s", u.baseURL, slug),
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}

	// 3. Products
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch products")
	}
	for _, p := range products {
		if p.Slug == "" {
			continue
		}
		items = append(items, SitemapItem{
			Loc:        fmt.Sprintf("%s/product/%s", u.baseURL, p.Slug),
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   0.9,
		})
	}

	return items, nil
}
