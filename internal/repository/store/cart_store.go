package store

import (
	"context"

	"aurex-storefront/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

type cartStore struct {
	kv domain.KVStore
}

func NewCartStore(kv domain.KVStore) domain.CartRepository {
	return &cartStore{kv: kv}
}

// Load returns ErrNotFound when nothing was saved for the profile and
// ErrCorruptSnapshot when the stored bytes do not decode.
func (s *cartStore) Load(ctx context.Context, profileID string) (*domain.Cart, error) {
	data, err := s.kv.Get(ctx, domain.CartKey(profileID))
	if err != nil {
		return nil, err
	}
	cart := domain.NewCart()
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode cart for %s", profileID), domain.ErrCorruptSnapshot)
	}
	if cart.Items == nil {
		cart.Items = []domain.LineItem{}
	}
	// a hand-edited snapshot may carry lines the engine would never store
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	return cart, nil
}

func (s *cartStore) Save(ctx context.Context, profileID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrapf(err, "encode cart for %s", profileID)
	}
	return s.kv.Set(ctx, domain.CartKey(profileID), data)
}
