package usecase

import (
	"sort"
	"strings"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/utils"

	"github.com/shopspring/decimal"
)

// Menu slugs that map onto a product attribute rather than a category.
var (
	priceSlugs = map[string]int64{
		"under-rs-1500": 1500,
		"under-rs-2000": 2000,
		"under-rs-3000": 3000,
		"under-rs-5000": 5000,
	}
	strapSlugs = map[string]string{
		"silicone-watches": "silicone",
		"leather-watches":  "leather",
		"steel-watches":    "steel",
		"nylon-watches":    "nylon",
	}
	typeSlugs = map[string]string{
		"analog-digital-watches": "analog-digital",
		"analog-watches":         "analog",
		"digital-watches":        "digital",
		"chronograph-watches":    "chronograph",
	}
	styleSlugs = map[string]string{
		"sports-wear": "sports",
		"sportswear":  "sports",
		"daily-wear":  "daily",
		"office-wear": "office",
	}
)

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// MatchesSlug reports whether p belongs under a collection slug. Rules are
// tried in order; the first rule that recognises the slug decides.
func MatchesSlug(p domain.Product, slug string) bool {
	if slug == "" || slug == "view-all" {
		return true
	}
	s := strings.ToLower(slug)

	if limit, ok := priceSlugs[s]; ok {
		return p.UnitPrice().LessThan(decimal.NewFromInt(limit))
	}
	if strap, ok := strapSlugs[s]; ok {
		return strings.ToLower(firstNonEmpty(p.StrapType, p.Strap)) == strap
	}
	if typ, ok := typeSlugs[s]; ok {
		return strings.ToLower(p.Type) == typ
	}
	if style, ok := styleSlugs[s]; ok {
		return strings.ToLower(p.Style) == style
	}
	switch s {
	case "men", "women", "unisex":
		return strings.ToLower(p.Gender) == s
	}

	if strings.ToLower(p.Category) == s {
		return true
	}
	for _, tag := range p.Tags {
		if utils.TagSlug(tag) == s {
			return true
		}
	}

	// an empty name would otherwise contain every slug
	nameSlug := utils.NameSlug(p.Name)
	if nameSlug == "" {
		return false
	}
	return strings.Contains(nameSlug, s) || strings.Contains(s, nameSlug)
}

// FilterProducts applies a listing query and sorts the result. The input is
// not modified.
func FilterProducts(products []domain.Product, q domain.ProductQuery) []domain.Product {
	category := utils.TagSlug(strings.TrimSpace(q.Category))
	priceRange, hasRange := domain.FindPriceRange(q.PriceID)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !MatchesSlug(p, category) {
			continue
		}
		if q.Gender != "" && !strings.EqualFold(p.Gender, q.Gender) {
			continue
		}
		if q.Strap != "" && !strings.EqualFold(firstNonEmpty(p.Strap, p.StrapType), q.Strap) {
			continue
		}
		if q.Type != "" && !strings.EqualFold(p.Type, q.Type) {
			continue
		}
		if hasRange {
			price := p.UnitPrice()
			if price.LessThan(priceRange.Min) || !price.LessThan(priceRange.Max) {
				continue
			}
		}
		if q.InStock && p.StockLevel() <= 0 {
			continue
		}
		if q.MinRating != nil && p.RatingValue() < *q.MinRating {
			continue
		}
		out = append(out, p)
	}

	SortProducts(out, q.Sort)
	return out
}

// SortProducts orders in place. Featured keeps catalog order; ties keep it too.
func SortProducts(products []domain.Product, order string) {
	switch order {
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].UnitPrice().LessThan(products[j].UnitPrice())
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].UnitPrice().GreaterThan(products[j].UnitPrice())
		})
	case domain.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].IsNew && !products[j].IsNew
		})
	}
}

// MatchesSearch requires every whitespace separated word of query to occur
// somewhere in the product's descriptive text. A blank query matches nothing.
func MatchesSearch(p domain.Product, query string) bool {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return false
	}
	hay := strings.ToLower(strings.Join([]string{
		p.Name, p.Category, p.Type, p.Style, p.Brand, p.Description, p.Gender, p.Strap,
	}, " "))
	for _, w := range words {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}
