package kv

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"aurex-storefront/internal/domain"

	"github.com/cockroachdb/errors"
)

// FileStore writes one file per key under dir. Writes go to a temp file that
// is renamed into place, so a reader never sees a half-written value.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create store dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Keys contain ':' and arbitrary profile ids, so file names are hex encoded.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(key))+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		err = domain.ErrNotFound
	} else if err != nil {
		err = unavailable(err, "read", key)
	}
	observe("file", "get", key, start, err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	s.mu.Lock()
	err := s.write(key, value)
	s.mu.Unlock()
	observe("file", "set", key, start, err)
	return err
}

func (s *FileStore) write(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return unavailable(err, "create temp for", key)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return unavailable(err, "write", key)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return unavailable(err, "sync", key)
	}
	if err := tmp.Close(); err != nil {
		return unavailable(err, "close", key)
	}
	return unavailable(os.Rename(tmp.Name(), s.path(key)), "rename", key)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return unavailable(err, "delete", key)
	}
	return nil
}

func (s *FileStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := os.ReadFile(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return unavailable(err, "read", key)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return s.write(key, next)
}

func (s *FileStore) Close() error {
	return nil
}
