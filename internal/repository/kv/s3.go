package kv

import (
	"context"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/storage"

	"github.com/cockroachdb/errors"
)

// ObjectClient is the object storage the S3 driver writes through.
// *storage.ObjectStore implements it.
type ObjectClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// S3Store keeps one object per key. S3 offers no compare-and-swap, so this
// driver does not implement Updater.
type S3Store struct {
	objects ObjectClient
}

func NewS3Store(objects ObjectClient) *S3Store {
	return &S3Store{objects: objects}
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := s.objects.Get(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		err = domain.ErrNotFound
	} else if err != nil {
		err = unavailable(err, "get", key)
	}
	observe("s3", "get", key, start, err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *S3Store) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := unavailable(s.objects.Put(ctx, key, value), "put", key)
	observe("s3", "set", key, start, err)
	return err
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	return unavailable(s.objects.Delete(ctx, key), "delete", key)
}

func (s *S3Store) Close() error {
	return nil
}
