package usecase

import (
	"context"
	"sync"

	"aurex-storefront/internal/domain"
)

type WishlistUsecase struct {
	repo        domain.WishlistRepository
	productRepo domain.ProductRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewWishlistUsecase(repo domain.WishlistRepository, productRepo domain.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{
		repo:        repo,
		productRepo: productRepo,
		locks:       make(map[string]*sync.Mutex),
	}
}

// lock serialises load-modify-save for one profile.
func (u *WishlistUsecase) lock(profileID string) func() {
	u.mu.Lock()
	l, ok := u.locks[profileID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[profileID] = l
	}
	u.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (u *WishlistUsecase) GetMyWishlist(ctx context.Context, profileID string) (*domain.Wishlist, error) {
	return u.repo.Load(ctx, profileID)
}

// update runs fn on the stored list and saves it only when fn reports a change.
func (u *WishlistUsecase) update(ctx context.Context, profileID string, fn func(w *domain.Wishlist) bool) (*domain.Wishlist, error) {
	unlock := u.lock(profileID)
	defer unlock()

	wishlist, err := u.repo.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !fn(wishlist) {
		return wishlist, nil
	}
	if err := u.repo.Save(ctx, profileID, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (u *WishlistUsecase) AddToWishlist(ctx context.Context, profileID string, productID domain.ProductID) (*domain.Wishlist, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return u.update(ctx, profileID, func(w *domain.Wishlist) bool {
		return w.Add(*product)
	})
}

func (u *WishlistUsecase) RemoveFromWishlist(ctx context.Context, profileID string, productID domain.ProductID) (*domain.Wishlist, error) {
	return u.update(ctx, profileID, func(w *domain.Wishlist) bool {
		return w.Remove(productID)
	})
}

// Toggle flips membership and reports whether the product is now wishlisted.
func (u *WishlistUsecase) Toggle(ctx context.Context, profileID string, productID domain.ProductID) (*domain.Wishlist, bool, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	var inList bool
	w, err := u.update(ctx, profileID, func(w *domain.Wishlist) bool {
		inList = w.Toggle(*product)
		return true
	})
	if err != nil {
		return nil, false, err
	}
	return w, inList, nil
}

func (u *WishlistUsecase) IsInWishlist(ctx context.Context, profileID string, productID domain.ProductID) (bool, error) {
	wishlist, err := u.repo.Load(ctx, profileID)
	if err != nil {
		return false, err
	}
	return wishlist.Has(productID), nil
}
