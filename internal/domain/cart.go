package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// LineItem is one product and the quantity selected. Product attributes are
// copied when the item is added and are not re-synced with the catalog.
type LineItem struct {
	ID            ProductID           `json:"id"`
	Slug          string              `json:"slug,omitempty"`
	Name          string              `json:"name"`
	Brand         string              `json:"brand,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discountPrice"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Images        []string            `json:"images,omitempty"`
	Quantity      int                 `json:"quantity"`
}

// NewLineItem snapshots p.
func NewLineItem(p Product, quantity int) LineItem {
	var images []string
	if len(p.Images) > 0 {
		images = append([]string(nil), p.Images...)
	} else if p.Image != "" {
		images = []string{p.Image}
	}
	return LineItem{
		ID:            p.ID,
		Slug:          p.Slug,
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		OriginalPrice: p.OriginalPrice,
		Images:        images,
		Quantity:      quantity,
	}
}

func (i LineItem) UnitPrice() decimal.Decimal {
	return EffectivePrice(i.Price, i.DiscountPrice)
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the aggregate root: ordered line items keyed by product id and at
// most one coupon. Every method is total; none of them fail.
type Cart struct {
	Items  []LineItem `json:"items"`
	Coupon *Coupon    `json:"coupon"`
}

func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

func (c *Cart) indexOf(id ProductID) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem merges quantity into an existing line or appends a new one.
// A line whose resulting quantity is not positive is dropped.
func (c *Cart) AddItem(p Product, quantity int) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Items[i].Quantity += quantity
		if c.Items[i].Quantity <= 0 {
			c.RemoveItem(p.ID)
		}
		return
	}
	if quantity <= 0 {
		return
	}
	c.Items = append(c.Items, NewLineItem(p, quantity))
}

func (c *Cart) RemoveItem(id ProductID) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(id ProductID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}
	if i := c.indexOf(id); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

func (c *Cart) SetCoupon(coupon *Coupon) {
	if coupon == nil {
		c.Coupon = nil
		return
	}
	cp := *coupon
	c.Coupon = &cp
}

func (c *Cart) Clear() {
	c.Items = []LineItem{}
	c.Coupon = nil
}

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c *Cart) Discount() decimal.Decimal {
	if c.Coupon == nil {
		return decimal.Zero
	}
	return c.Coupon.DiscountOn(c.Subtotal())
}

// Total is floored at zero independently of the coupon's own clamp.
func (c *Cart) Total() decimal.Decimal {
	return decimal.Max(decimal.Zero, c.Subtotal().Sub(c.Discount()))
}

func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Clone returns a deep copy safe to hand to another goroutine.
func (c *Cart) Clone() *Cart {
	out := &Cart{Items: make([]LineItem, len(c.Items))}
	for i, item := range c.Items {
		if item.Images != nil {
			item.Images = append([]string(nil), item.Images...)
		}
		out.Items[i] = item
	}
	if c.Coupon != nil {
		cp := *c.Coupon
		out.Coupon = &cp
	}
	return out
}

// View pairs a cart snapshot with its derived totals for rendering.
func (c *Cart) View() CartView {
	snap := c.Clone()
	return CartView{
		Items:    snap.Items,
		Coupon:   snap.Coupon,
		Subtotal: c.Subtotal(),
		Discount: c.Discount(),
		Total:    c.Total(),
		Count:    c.Count(),
	}
}

// CartView.Version increases with every mutation of the owning engine, so a
// consumer can discard views that arrive out of order.
type CartView struct {
	Version  uint64          `json:"version"`
	Items    []LineItem      `json:"items"`
	Coupon   *Coupon         `json:"coupon"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// CartRepository persists one cart snapshot per browser profile.
type CartRepository interface {
	Load(ctx context.Context, profileID string) (*Cart, error)
	Save(ctx context.Context, profileID string, cart *Cart) error
}
