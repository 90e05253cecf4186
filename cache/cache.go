// Package cache keeps short-lived copies of index documents on disk.
package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rubiojr/kv"
)

// DefaultExpiry is how long a cached entry stays valid.
const DefaultExpiry = time.Hour

type Cache interface {
	Get(key []byte) ([]byte, error)
	Put(key []byte, value []byte) error
	Namespace(name string) Cache
}

type CacheOption func(*kvCache)

func WithExpiry(expiry time.Duration) CacheOption {
	return func(c *kvCache) {
		c.expiry = expiry
	}
}

type kvCache struct {
	db        kv.Database
	expiry    time.Duration
	namespace string
}

// NewCache opens the sqlite database at path, creating its directory.
func NewCache(path string, opts ...CacheOption) (*kvCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := kv.New("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}

	cache := &kvCache{db: db, expiry: DefaultExpiry}
	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

func (c *kvCache) Get(key []byte) ([]byte, error) {
	return c.db.Get(c.namespace + string(key))
}

func (c *kvCache) Put(key []byte, value []byte) error {
	expireAt := time.Now().Add(c.expiry)
	return c.db.Set(c.namespace+string(key), value, &expireAt)
}

// Namespace returns a view whose keys are prefixed with name.
func (c *kvCache) Namespace(name string) Cache {
	return &kvCache{
		db:        c.db,
		expiry:    c.expiry,
		namespace: c.namespace + name + ":",
	}
}

// Close releases the database handle. Namespaced views share it, so close
// only the cache returned by NewCache.
func (c *kvCache) Close() error {
	if closer, ok := c.db.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
