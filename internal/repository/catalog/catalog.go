package catalog

import (
	"context"
	_ "embed"
	"os"
	"strings"

	"aurex-storefront/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

//go:embed data/products.json
var defaultProducts []byte

//go:embed data/coupons.json
var defaultCoupons []byte

// readSource returns the file at path, or fallback when path is empty.
func readSource(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// productRepo serves a fixed, normalised product list loaded at startup.
type productRepo struct {
	products []domain.Product
	bySlug   map[string]int
	byID     map[domain.ProductID]int
}

// NewProductRepository loads products from path, or the bundled catalog when
// path is empty.
func NewProductRepository(path string) (domain.ProductRepository, error) {
	data, err := readSource(path, defaultProducts)
	if err != nil {
		return nil, err
	}
	return parseProducts(data)
}

func parseProducts(data []byte) (*productRepo, error) {
	var raw []domain.Product
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode product catalog")
	}
	r := &productRepo{
		products: make([]domain.Product, 0, len(raw)),
		bySlug:   make(map[string]int, len(raw)),
		byID:     make(map[domain.ProductID]int, len(raw)),
	}
	for _, p := range raw {
		if p.ID == "" {
			return nil, errors.Newf("product %q has no id", p.Name)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, errors.Newf("duplicate product id %s", p.ID)
		}
		r.byID[p.ID] = len(r.products)
		if p.Slug != "" {
			r.bySlug[p.Slug] = len(r.products)
		}
		r.products = append(r.products, p.Normalize())
	}
	return r, nil
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	i, ok := r.bySlug[slug]
	if !ok {
		return nil, errors.Wrapf(domain.ErrProductNotFound, "slug %s", slug)
	}
	p := r.products[i]
	return &p, nil
}

func (r *productRepo) GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, errors.Wrapf(domain.ErrProductNotFound, "id %s", id)
	}
	p := r.products[i]
	return &p, nil
}

type couponRepo struct {
	rules []domain.CouponRule
}

// NewCouponRepository loads the coupon book. Entries with an unknown type fail
// the load rather than being silently skipped.
func NewCouponRepository(path string) (domain.CouponRepository, error) {
	data, err := readSource(path, defaultCoupons)
	if err != nil {
		return nil, err
	}
	var rules []domain.CouponRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, errors.Wrap(err, "decode coupon book")
	}
	seen := make(map[string]bool, len(rules))
	for i := range rules {
		rules[i].Code = domain.NormalizeCouponCode(rules[i].Code)
		if rules[i].Code == "" {
			return nil, errors.Newf("coupon %d has no code", i)
		}
		if seen[rules[i].Code] {
			return nil, errors.Newf("duplicate coupon %s", rules[i].Code)
		}
		if rules[i].Value.IsNegative() {
			return nil, errors.Newf("coupon %s has a negative value", rules[i].Code)
		}
		seen[rules[i].Code] = true
	}
	return &couponRepo{rules: rules}, nil
}

func (r *couponRepo) FindByCode(ctx context.Context, code string) (*domain.CouponRule, error) {
	code = domain.NormalizeCouponCode(code)
	for _, rule := range r.rules {
		if strings.EqualFold(rule.Code, code) {
			found := rule
			return &found, nil
		}
	}
	return nil, errors.Wrapf(domain.ErrNotFound, "coupon %s", code)
}

func (r *couponRepo) List(ctx context.Context) ([]domain.CouponRule, error) {
	out := make([]domain.CouponRule, len(r.rules))
	copy(out, r.rules)
	return out, nil
}
