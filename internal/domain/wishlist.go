package domain

import (
	"context"
)

// Wishlist is an ordered set of product snapshots keyed by id.
type Wishlist struct {
	Items []Product `json:"items"`
}

func NewWishlist() *Wishlist {
	return &Wishlist{Items: []Product{}}
}

func (w *Wishlist) Has(id ProductID) bool {
	for _, p := range w.Items {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Add reports whether p was inserted; an existing id is left untouched.
func (w *Wishlist) Add(p Product) bool {
	if w.Has(p.ID) {
		return false
	}
	w.Items = append(w.Items, p)
	return true
}

func (w *Wishlist) Remove(id ProductID) bool {
	for i, p := range w.Items {
		if p.ID == id {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle removes p if present, else adds it. It returns the new membership.
func (w *Wishlist) Toggle(p Product) bool {
	if w.Remove(p.ID) {
		return false
	}
	w.Items = append(w.Items, p)
	return true
}

type WishlistRepository interface {
	Load(ctx context.Context, profileID string) (*Wishlist, error)
	Save(ctx context.Context, profileID string, wishlist *Wishlist) error
}

// KVStore is durable key-value storage. Get of a missing key returns ErrNotFound.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
