package store

import (
	"context"
	"sync"

	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/repository/kv"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

type orderStore struct {
	kv domain.KVStore
	// serialises read-modify-write on drivers without an atomic Update
	mu sync.Mutex
}

func NewOrderStore(store domain.KVStore) domain.OrderRepository {
	return &orderStore{kv: store}
}

func decodeOrders(data []byte, profileID string) ([]domain.Order, error) {
	if len(data) == 0 {
		return []domain.Order{}, nil
	}
	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode orders for %s", profileID), domain.ErrCorruptSnapshot)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Append puts order at the front of the profile's history.
func (s *orderStore) Append(ctx context.Context, profileID string, order domain.Order) error {
	key := domain.OrdersKey(profileID)
	prepend := func(current []byte) ([]byte, error) {
		orders, err := decodeOrders(current, profileID)
		if err != nil {
			return nil, err
		}
		orders = append([]domain.Order{order}, orders...)
		data, err := json.Marshal(orders)
		if err != nil {
			return nil, errors.Wrapf(err, "encode orders for %s", profileID)
		}
		return data, nil
	}

	if u, ok := s.kv.(kv.Updater); ok {
		return u.Update(ctx, key, prepend)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.kv.Get(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	next, err := prepend(current)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, next)
}

func (s *orderStore) List(ctx context.Context, profileID string) ([]domain.Order, error) {
	data, err := s.kv.Get(ctx, domain.OrdersKey(profileID))
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeOrders(data, profileID)
}
