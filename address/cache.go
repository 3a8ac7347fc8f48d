package address

import (
	"errors"
	"sync"

	"github.com/lightninglabs/neutrino/cache"
	"github.com/lightninglabs/neutrino/cache/lru"
	"github.com/lightningnetwork/walletkit/kitcfg"
	"github.com/lightningnetwork/walletkit/kitutils"
)

// DecodeCache maps address strings to decoded addresses. Keys are the literal
// input strings, so strings that differ only in case are distinct entries.
type DecodeCache interface {
	// Get returns the address stored under s, if any.
	Get(s string) (*Address, bool)

	// LoadOrStore stores addr under s unless an address is already stored
	// there, and returns the stored address.
	LoadOrStore(s string, addr *Address) *Address

	// Len returns the number of cached addresses.
	Len() int
}

// MapCache is an unbounded DecodeCache. Entries are written once and never
// evicted, which suits processes that only ever see a handful of addresses.
type MapCache struct {
	entries kitutils.SyncMap[string, *Address]
}

// NewMapCache creates an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{}
}

// Get returns the address stored under s, if any.
//
// NOTE: This is part of the DecodeCache interface.
func (m *MapCache) Get(s string) (*Address, bool) {
	return m.entries.Load(s)
}

// LoadOrStore stores addr under s unless an address is already stored there.
// The first stored address wins, so every reader of s shares one pointer.
//
// NOTE: This is part of the DecodeCache interface.
func (m *MapCache) LoadOrStore(s string, addr *Address) *Address {
	stored, _ := m.entries.LoadOrStore(s, addr)

	return stored
}

// Len returns the number of cached addresses.
//
// NOTE: This is part of the DecodeCache interface.
func (m *MapCache) Len() int {
	return m.entries.Len()
}

// cachedAddress wraps an address so it can be stored in the LRU cache.
type cachedAddress struct {
	addr *Address
}

// Size returns the "size" of an entry. We return 1 as we just want to limit
// the total number of entries rather than do accurate size accounting.
func (c *cachedAddress) Size() (uint64, error) {
	return 1, nil
}

// LRUCache is a DecodeCache that holds at most a fixed number of addresses
// and evicts the least recently used one when full.
type LRUCache struct {
	// mtx makes the Get-then-Put of LoadOrStore atomic. Single calls are
	// already locked inside the lru cache.
	mtx sync.Mutex

	entries *lru.Cache[string, *cachedAddress]
}

// NewLRUCache creates an LRUCache holding at most capacity addresses.
func NewLRUCache(capacity uint64) *LRUCache {
	return &LRUCache{
		entries: lru.NewCache[string, *cachedAddress](capacity),
	}
}

// Get returns the address stored under s, if any.
//
// NOTE: This is part of the DecodeCache interface.
func (l *LRUCache) Get(s string) (*Address, bool) {
	entry, err := l.entries.Get(s)
	if err != nil {
		return nil, false
	}

	return entry.addr, true
}

// LoadOrStore stores addr under s unless an address is already stored there.
//
// NOTE: This is part of the DecodeCache interface.
func (l *LRUCache) LoadOrStore(s string, addr *Address) *Address {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	entry, err := l.entries.Get(s)
	switch {
	case err == nil:
		return entry.addr

	case !errors.Is(err, cache.ErrElementNotFound):
		log.Warnf("Unable to query decode cache: %v", err)
	}

	if _, err := l.entries.Put(s, &cachedAddress{addr: addr}); err != nil {
		log.Warnf("Unable to cache address %s: %v", s, err)
	}

	return addr
}

// Len returns the number of cached addresses.
//
// NOTE: This is part of the DecodeCache interface.
func (l *LRUCache) Len() int {
	return l.entries.Len()
}

// DisabledCache is a DecodeCache that never stores anything.
type DisabledCache struct{}

// Get always reports a miss.
//
// NOTE: This is part of the DecodeCache interface.
func (DisabledCache) Get(string) (*Address, bool) {
	return nil, false
}

// LoadOrStore returns addr without storing it.
//
// NOTE: This is part of the DecodeCache interface.
func (DisabledCache) LoadOrStore(_ string, addr *Address) *Address {
	return addr
}

// Len always returns 0.
//
// NOTE: This is part of the DecodeCache interface.
func (DisabledCache) Len() int {
	return 0
}

// NewCacheFromConfig creates the decode cache selected by the config. The
// config must have been validated.
func NewCacheFromConfig(cfg *kitcfg.AddrCache) DecodeCache {
	switch cfg.Type {
	case kitcfg.AddrCacheLRU:
		return NewLRUCache(uint64(cfg.Size))

	case kitcfg.AddrCacheNone:
		return DisabledCache{}

	default:
		return NewMapCache()
	}
}

// Compile time checks to ensure the caches satisfy the DecodeCache interface.
var _ DecodeCache = (*MapCache)(nil)
var _ DecodeCache = (*LRUCache)(nil)
var _ DecodeCache = DisabledCache{}
