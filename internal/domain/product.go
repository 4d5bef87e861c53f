package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

const (
	DefaultProductStock  = 10
	DefaultProductRating = 4.5
)

// Product is a catalog entry as supplied by listing and detail pages.
type Product struct {
	ID            ProductID           `json:"id"`
	Slug          string              `json:"slug"`
	Name          string              `json:"name"`
	Brand         string              `json:"brand,omitempty"`
	Description   string              `json:"description,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discountPrice"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Images        []string            `json:"images,omitempty"`
	Image         string              `json:"image,omitempty"`
	Category      string              `json:"category,omitempty"`
	Gender        string              `json:"gender,omitempty"`
	Strap         string              `json:"strap,omitempty"`
	StrapType     string              `json:"strapType,omitempty"`
	Type          string              `json:"type,omitempty"`
	Style         string              `json:"style,omitempty"`
	Tags          []string            `json:"tags,omitempty"`
	Stock         *int                `json:"stock,omitempty"`
	Rating        *float64            `json:"rating,omitempty"`
	Reviews       int                 `json:"reviews"`
	IsNew         bool                `json:"isNew,omitempty"`
}

// UnitPrice is the price used when this product is bought.
func (p Product) UnitPrice() decimal.Decimal {
	return EffectivePrice(p.Price, p.DiscountPrice)
}

// StockLevel treats an unknown stock as available.
func (p Product) StockLevel() int {
	if p.Stock == nil {
		return 1
	}
	return *p.Stock
}

func (p Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Normalize fills the defaults the storefront relies on: discountPrice falls
// back to price, stock to 10, rating to 4.5, strapType to strap, and tags to
// the descriptive attributes of the product.
func (p Product) Normalize() Product {
	if !p.DiscountPrice.Valid {
		p.DiscountPrice = decimal.NewNullDecimal(p.Price)
	}
	if p.Stock == nil {
		stock := DefaultProductStock
		p.Stock = &stock
	}
	if p.Rating == nil {
		rating := DefaultProductRating
		p.Rating = &rating
	}
	if p.StrapType == "" {
		p.StrapType = p.Strap
	}
	if p.Tags == nil {
		for _, t := range []string{p.Category, p.Gender, p.Strap, p.Type, p.Style} {
			if t != "" {
				p.Tags = append(p.Tags, t)
			}
		}
	}
	if len(p.Images) == 0 && p.Image != "" {
		p.Images = []string{p.Image}
	}
	return p
}

// Product listing sort orders.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
)

var SortOptions = []string{SortFeatured, SortPriceAsc, SortPriceDesc, SortNewest}

// PriceRange is a half-open [Min, Max) band on the effective price.
type PriceRange struct {
	ID    string          `json:"id"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Label string          `json:"label"`
}

var PriceRanges = []PriceRange{
	{ID: "0-2000", Min: decimal.NewFromInt(0), Max: decimal.NewFromInt(2000), Label: "Under ₹2,000"},
	{ID: "2000-3500", Min: decimal.NewFromInt(2000), Max: decimal.NewFromInt(3500), Label: "₹2,000 – ₹3,500"},
	{ID: "3500-5000", Min: decimal.NewFromInt(3500), Max: decimal.NewFromInt(5000), Label: "₹3,500 – ₹5,000"},
	{ID: "5000-99999", Min: decimal.NewFromInt(5000), Max: decimal.NewFromInt(99999), Label: "Above ₹5,000"},
}

func FindPriceRange(id string) (PriceRange, bool) {
	for _, r := range PriceRanges {
		if r.ID == id {
			return r, true
		}
	}
	return PriceRange{}, false
}

// ProductQuery mirrors the listing page's URL parameters.
type ProductQuery struct {
	Category  string
	Gender    string
	Strap     string
	Type      string
	PriceID   string
	InStock   bool
	MinRating *float64
	Sort      string
}

type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByID(ctx context.Context, id ProductID) (*Product, error)
}
