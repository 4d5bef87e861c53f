package cache

import "time"

const (
	// NoExpiration keeps an item until it is deleted or the cache is flushed.
	NoExpiration time.Duration = -1
	// DefaultExpiration uses the TTL the cache was created with.
	DefaultExpiration time.Duration = 0
)

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get returns the value and true if the key is present and not expired.
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)

	// Flush removes all items
	Flush()
}

// GetOrLoad returns the cached value for key, calling load and caching its
// result on a miss. Load errors are not cached.
func GetOrLoad[T any](c CacheService, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if cached, found := c.Get(key); found {
		if v, ok := cached.(T); ok {
			return v, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v, ttl)
	return v, nil
}
