package usecase

import (
	"context"
	"sync"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/logger"

	"github.com/cockroachdb/errors"
)

var ErrRegistryClosed = errors.New("cart registry is closed")

type registryEntry struct {
	ready  chan struct{}
	engine *CartEngine
	err    error
}

// CartRegistry hands out exactly one CartEngine per profile. Engines are
// restored from the repository on first use and live until Close.
type CartRegistry struct {
	repo domain.CartRepository

	mu      sync.Mutex
	entries map[string]*registryEntry
	closed  bool
}

func NewCartRegistry(repo domain.CartRepository) *CartRegistry {
	return &CartRegistry{
		repo:    repo,
		entries: make(map[string]*registryEntry),
	}
}

// Get returns the profile's engine, restoring it if this is the first call.
// Concurrent first calls share one restore.
func (r *CartRegistry) Get(ctx context.Context, profileID string) (*CartEngine, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}
	e, ok := r.entries[profileID]
	if !ok {
		e = &registryEntry{ready: make(chan struct{})}
		r.entries[profileID] = e
	}
	r.mu.Unlock()

	if !ok {
		e.engine, e.err = r.restore(ctx, profileID)
		if e.err != nil {
			r.mu.Lock()
			delete(r.entries, profileID)
			r.mu.Unlock()
		}
		close(e.ready)
	}

	select {
	case <-e.ready:
		return e.engine, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// restore treats a missing or unreadable snapshot as an empty cart. Any other
// storage failure is returned so the caller can retry.
func (r *CartRegistry) restore(ctx context.Context, profileID string) (*CartEngine, error) {
	l := logger.WithProfileID(*logger.WithContext(ctx), profileID)

	cart, err := r.repo.Load(ctx, profileID)
	switch {
	case err == nil:
		l.Debug().Int("items", len(cart.Items)).Msg("Cart restored")
	case errors.Is(err, domain.ErrNotFound):
		cart = domain.NewCart()
	case errors.Is(err, domain.ErrCorruptSnapshot):
		l.Warn().Err(err).Msg("Discarding unreadable cart snapshot")
		cart = domain.NewCart()
	default:
		return nil, errors.Wrapf(err, "restore cart for %s", profileID)
	}
	return NewCartEngine(profileID, cart, r.repo), nil
}

// Close flushes and stops every engine. Errors from individual engines are combined.
func (r *CartRegistry) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	entries := make([]*registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.Unlock()

	var result error
	for _, e := range entries {
		select {
		case <-e.ready:
		case <-ctx.Done():
			return errors.CombineErrors(result, ctx.Err())
		}
		if e.engine == nil {
			continue
		}
		if err := e.engine.Close(ctx); err != nil {
			result = errors.CombineErrors(result, errors.Wrapf(err, "close cart %s", e.engine.ProfileID()))
		}
	}
	return result
}

// Shutdown closes the registry under its own deadline, so pending carts are
// still written when the caller's shutdown context has already expired.
func (r *CartRegistry) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Close(ctx)
}
