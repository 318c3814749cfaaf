package policy

import (
	"expvar"

	"github.com/hashicorp/golang-lru"
)

var (
	cacheHits   = expvar.NewInt("policy/cache_hits")
	cacheMisses = expvar.NewInt("policy/cache_misses")
)

// Cache holds recently loaded snapshots keyed by filename.
// Cached snapshots are shared and must not be modified.
type Cache struct {
	cache *lru.Cache
}

func NewCache(size int) (*Cache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &Cache{cache}, nil
}

// Load returns the snapshot in filename, reading it only on a cache miss.
func (c *Cache) Load(filename string) (*Snapshot, error) {
	if s, ok := c.cache.Get(filename); ok {
		cacheHits.Add(1)
		return s.(*Snapshot), nil
	}

	cacheMisses.Add(1)
	s, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}

	c.cache.Add(filename, s)
	return s, nil
}

func (c *Cache) Len() int {
	return c.cache.Len()
}
