package store

import (
	"context"

	"aurex-storefront/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

type wishlistStore struct {
	kv domain.KVStore
}

func NewWishlistStore(kv domain.KVStore) domain.WishlistRepository {
	return &wishlistStore{kv: kv}
}

// Load never returns ErrNotFound; a profile without a saved list has an empty one.
func (s *wishlistStore) Load(ctx context.Context, profileID string) (*domain.Wishlist, error) {
	data, err := s.kv.Get(ctx, domain.WishlistKey(profileID))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewWishlist(), nil
	}
	if err != nil {
		return nil, err
	}
	var items []domain.Product
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode wishlist for %s", profileID), domain.ErrCorruptSnapshot)
	}
	w := domain.NewWishlist()
	for _, p := range items {
		w.Add(p)
	}
	return w, nil
}

// Save stores the bare item array, the same shape the storefront keeps locally.
func (s *wishlistStore) Save(ctx context.Context, profileID string, w *domain.Wishlist) error {
	items := w.Items
	if items == nil {
		items = []domain.Product{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encode wishlist for %s", profileID)
	}
	return s.kv.Set(ctx, domain.WishlistKey(profileID), data)
}
