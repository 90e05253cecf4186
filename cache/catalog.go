package cache

import (
	"context"
	"encoding/json"

	"github.com/snowdrop-pm/snowdrop/internal/log"
)

const namesKey = "names"

// NamesFunc fetches the package names from the index.
type NamesFunc func(ctx context.Context) ([]string, error)

// Catalog caches the names list of one index.
type Catalog struct {
	cache Cache
	index string
}

// NewCatalog scopes c to index so several indexes can share a database.
func NewCatalog(c Cache, index string) *Catalog {
	return &Catalog{
		cache: c.Namespace("catalog:" + index),
		index: index,
	}
}

// Names returns the cached names, calling fetch on a miss or when refresh is
// set. A cache that can't be written never fails the lookup.
func (c *Catalog) Names(ctx context.Context, fetch NamesFunc, refresh bool) ([]string, error) {
	if !refresh {
		if names, ok := c.cached(); ok {
			log.Debug("Package names served from cache", "index", c.index, "count", len(names))
			return names, nil
		}
	}

	names, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(names)
	if err == nil {
		err = c.cache.Put([]byte(namesKey), data)
	}
	if err != nil {
		log.Warn("Failed to cache package names", "index", c.index, "error", err)
	}

	return names, nil
}

func (c *Catalog) cached() ([]string, bool) {
	data, err := c.cache.Get([]byte(namesKey))
	if err != nil || len(data) == 0 {
		return nil, false
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		log.Debug("Ignoring corrupt names cache", "index", c.index, "error", err)
		return nil, false
	}
	return names, true
}
