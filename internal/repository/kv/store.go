package kv

import (
	"context"
	"time"

	"aurex-storefront/config"
	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/logger"
	"aurex-storefront/pkg/storage"

	"github.com/cockroachdb/errors"
)

// Store is a KVStore that owns resources.
type Store interface {
	domain.KVStore
	Close() error
}

// Updater is implemented by drivers that can run a read-modify-write of one
// key atomically. fn receives nil when the key is absent.
type Updater interface {
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}

// Open builds the driver selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		s = NewMemoryStore()
	case config.DriverFile:
		s, err = NewFileStore(cfg.StoreDir)
	case config.DriverSQLite:
		s, err = NewSQLiteStore(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		s, err = NewPostgresStore(ctx, cfg)
	case config.DriverS3:
		var objects *storage.ObjectStore
		objects, err = storage.NewObjectStore(ctx, storage.ObjectStoreConfig{
			AccountID: cfg.S3AccountID,
			AccessKey: cfg.S3AccessKeyID,
			SecretKey: cfg.S3AccessKeySecret,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Endpoint:  cfg.S3Endpoint,
			Timeout:   cfg.S3Timeout,
		})
		if err == nil {
			s = NewS3Store(objects)
		}
	default:
		return nil, errors.Newf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store", cfg.StoreDriver)
	}
	logger.Info().Str("driver", cfg.StoreDriver).Msg("Store opened")
	return s, nil
}

// unavailable marks err so callers can tell a broken backend from a missing key.
func unavailable(err error, op, key string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(err, "%s %s", op, key), domain.ErrStoreUnavailable)
}

func observe(driver, op, key string, start time.Time, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		err = nil
	}
	logger.StoreOp(driver, op, key, time.Since(start), err)
}
