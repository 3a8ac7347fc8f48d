package kitcfg

import "fmt"

const (
	// AddrCacheMap selects the unbounded map cache.
	AddrCacheMap = "map"

	// AddrCacheLRU selects the bounded LRU cache.
	AddrCacheLRU = "lru"

	// AddrCacheNone disables the decode cache.
	AddrCacheNone = "none"

	// DefaultAddrCacheSize is the default capacity of the LRU cache.
	DefaultAddrCacheSize = 1024
)

// AddrCache holds the configuration of the address decode cache.
//
//nolint:lll
type AddrCache struct {
	Type string `long:"type" description:"The kind of address decode cache. The map cache never evicts and suits sessions that handle a few addresses." choice:"map" choice:"lru" choice:"none"`
	Size int    `long:"size" description:"The maximum number of decoded addresses kept by the lru cache."`
}

// DefaultAddrCache returns the default address cache config.
func DefaultAddrCache() *AddrCache {
	return &AddrCache{
		Type: AddrCacheMap,
		Size: DefaultAddrCacheSize,
	}
}

// Validate checks the cache type and size.
//
// NOTE: This is part of the Validator interface.
func (c *AddrCache) Validate() error {
	switch c.Type {
	case AddrCacheMap, AddrCacheNone:
		return nil

	case AddrCacheLRU:
		if c.Size <= 0 {
			return fmt.Errorf("addrcache.size must be positive, "+
				"got %d", c.Size)
		}

		return nil

	default:
		return fmt.Errorf("unknown addrcache.type %q", c.Type)
	}
}
