package pagecache

import (
	"fmt"
	"time"

	"yatube/internal/pkg/cache"
)

// TTL is the lifetime of a cached index fragment. Writes do not invalidate
// the cache; staleness up to TTL is an accepted trade-off.
const TTL = 20 * time.Second

const keyPrefix = "pages:index:"

// Backend is the minimal store the page cache needs. The default backend
// is the shared redis client; tests swap in an in-memory fake.
type Backend interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
	DeleteByPattern(pattern string) error
}

type redisBackend struct{}

func (redisBackend) Get(key string) (string, error) {
	return cache.Get(key)
}

func (redisBackend) Set(key string, value interface{}, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}

func (redisBackend) DeleteByPattern(pattern string) error {
	return cache.DeleteByPattern(pattern)
}

var backend Backend = redisBackend{}

// SetBackend replaces the storage backend. Intended for tests.
func SetBackend(b Backend) {
	backend = b
}

// IndexKey builds the cache key for one page of the post index. The key is
// derived from the page number only, so all viewers share one entry.
func IndexKey(page int) string {
	return fmt.Sprintf("%s%d", keyPrefix, page)
}

// Get returns the cached fragment for the key, or ok=false on miss or
// backend failure. A broken cache must never break the page.
func Get(key string) ([]byte, bool) {
	val, err := backend.Get(key)
	if err != nil || val == "" {
		return nil, false
	}
	return []byte(val), true
}

// Set stores a rendered fragment under the key for TTL.
func Set(key string, body []byte) {
	_ = backend.Set(key, string(body), TTL)
}

// Clear drops every cached index fragment. Used by tests and operators;
// normal request handling relies on TTL expiry alone.
func Clear() error {
	return backend.DeleteByPattern(keyPrefix + "*")
}
