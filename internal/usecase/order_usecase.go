package usecase

import (
	"context"

	"aurex-storefront/internal/domain"

	"github.com/cockroachdb/errors"
)

type OrderUsecase struct {
	orderRepo domain.OrderRepository
}

func NewOrderUsecase(repo domain.OrderRepository) *OrderUsecase {
	return &OrderUsecase{orderRepo: repo}
}

// GetMyOrders lists the profile's orders, most recent first.
func (u *OrderUsecase) GetMyOrders(ctx context.Context, profileID string) ([]domain.Order, error) {
	orders, err := u.orderRepo.List(ctx, profileID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}
	return orders, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, profileID, orderID string) (*domain.Order, error) {
	orders, err := u.GetMyOrders(ctx, profileID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, errors.Wrapf(domain.ErrOrderNotFound, "%s", orderID)
}
