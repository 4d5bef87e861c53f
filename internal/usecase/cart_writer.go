package usecase

import (
	"context"
	"sync"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/logger"
)

const snapshotWriteTimeout = 10 * time.Second

// snapshotWriter persists cart snapshots off the caller's goroutine. Only the
// newest pending snapshot is kept, and a write never replaces a newer one.
type snapshotWriter struct {
	profileID string
	repo      domain.CartRepository

	mu         sync.Mutex
	pending    *domain.Cart
	pendingVer uint64

	writeMu    sync.Mutex
	writtenVer uint64

	wake      chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func newSnapshotWriter(profileID string, repo domain.CartRepository) *snapshotWriter {
	w := &snapshotWriter{
		profileID: profileID,
		repo:      repo,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go w.loop()
	return w
}

// Submit queues cart as version ver. Older versions than the one pending are ignored.
func (w *snapshotWriter) Submit(ver uint64, cart *domain.Cart) {
	w.mu.Lock()
	if ver > w.pendingVer {
		w.pending = cart
		w.pendingVer = ver
	}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *snapshotWriter) loop() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			ctx, cancel := context.WithTimeout(context.Background(), snapshotWriteTimeout)
			if err := w.drain(ctx); err != nil {
				l := logger.WithProfileID(*logger.Get(), w.profileID)
				l.Warn().Err(err).Msg("Cart snapshot not persisted, keeping in-memory state")
			}
			cancel()
		case <-w.done:
			return
		}
	}
}

// drain writes the pending snapshot, if any. Drains are serialized, so a
// caller returns only after any write already in flight has finished. A
// failed snapshot is put back unless a newer one arrived meanwhile.
func (w *snapshotWriter) drain(ctx context.Context) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	cart, ver := w.pending, w.pendingVer
	w.pending = nil
	w.mu.Unlock()
	if cart == nil || ver <= w.writtenVer {
		return nil
	}

	if err := w.repo.Save(ctx, w.profileID, cart); err != nil {
		w.mu.Lock()
		if w.pending == nil {
			w.pending = cart
		}
		w.mu.Unlock()
		return err
	}
	w.writtenVer = ver
	return nil
}

// Flush waits for an in-flight write and then stores whatever is still pending.
func (w *snapshotWriter) Flush(ctx context.Context) error {
	return w.drain(ctx)
}

func (w *snapshotWriter) Close(ctx context.Context) error {
	w.closeOnce.Do(func() { close(w.done) })
	select {
	case <-w.stopped:
	case <-ctx.Done():
		return ctx.Err()
	}
	return w.Flush(ctx)
}
