package address

import (
	"testing"

	"github.com/lightningnetwork/walletkit/kitcfg"
	"github.com/lightningnetwork/walletkit/netparams"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestMapCacheIdentity asserts that decoding one string twice returns the
// same pointer with the map cache.
func TestMapCacheIdentity(t *testing.T) {
	t.Parallel()

	codec := NewAccountCodec(nil, NewMapCache())
	s := codec.FromPublicKey(newTestKey(t), netparams.Mainnet).String()

	first, err := codec.FromString(s)
	require.NoError(t, err)

	second, err := codec.FromString(s)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, codec.Cache().Len())
}

// TestMapCacheConcurrentDecode decodes the same string from many goroutines
// and asserts they all end up with the same pointer.
func TestMapCacheConcurrentDecode(t *testing.T) {
	t.Parallel()

	const numDecoders = 32

	codec := NewAccountCodec(nil, NewMapCache())
	s := codec.FromPublicKey(newTestKey(t), netparams.Stokenet).String()

	results := make([]*Address, numDecoders)

	var eg errgroup.Group
	for i := 0; i < numDecoders; i++ {
		eg.Go(func() error {
			addr, err := codec.FromString(s)
			results[i] = addr

			return err
		})
	}
	require.NoError(t, eg.Wait())

	for _, addr := range results[1:] {
		require.Same(t, results[0], addr)
	}
	require.Equal(t, 1, codec.Cache().Len())
}

// TestDisabledCache asserts that without a cache every decode yields a new,
// but equal, address.
func TestDisabledCache(t *testing.T) {
	t.Parallel()

	codec := NewAccountCodec(nil, DisabledCache{})
	s := codec.FromPublicKey(newTestKey(t), netparams.Mainnet).String()

	first, err := codec.FromString(s)
	require.NoError(t, err)

	second, err := codec.FromString(s)
	require.NoError(t, err)
	require.NotSame(t, first, second)
	require.True(t, first.Equals(second))
	require.Zero(t, codec.Cache().Len())
}

// TestLRUCacheEviction checks that the LRU cache is bounded.
func TestLRUCacheEviction(t *testing.T) {
	t.Parallel()

	cache := NewLRUCache(2)
	codec := NewAccountCodec(nil, cache)

	var addrs []string
	for i := 0; i < 3; i++ {
		addr := codec.FromPublicKey(newTestKey(t), netparams.Mainnet)
		addrs = append(addrs, addr.String())
	}

	first, err := codec.FromString(addrs[0])
	require.NoError(t, err)

	again, err := codec.FromString(addrs[0])
	require.NoError(t, err)
	require.Same(t, first, again)

	for _, s := range addrs[1:] {
		_, err := codec.FromString(s)
		require.NoError(t, err)
	}
	require.Equal(t, 2, cache.Len())

	// The first address was the least recently used one.
	_, ok := cache.Get(addrs[0])
	require.False(t, ok)

	evicted, err := codec.FromString(addrs[0])
	require.NoError(t, err)
	require.NotSame(t, first, evicted)
	require.True(t, first.Equals(evicted))
}

// TestLRUCacheLoadOrStore asserts the first stored address wins.
func TestLRUCacheLoadOrStore(t *testing.T) {
	t.Parallel()

	cache := NewLRUCache(10)
	codec := NewAccountCodec(nil, DisabledCache{})
	pub := newTestKey(t)

	a := codec.FromPublicKey(pub, netparams.Mainnet)
	b := codec.FromPublicKey(pub, netparams.Mainnet)
	require.NotSame(t, a, b)

	require.Same(t, a, cache.LoadOrStore(a.String(), a))
	require.Same(t, a, cache.LoadOrStore(a.String(), b))

	stored, ok := cache.Get(a.String())
	require.True(t, ok)
	require.Same(t, a, stored)
}

// TestNewCacheFromConfig checks the cache selected by each config type.
func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	require.IsType(t, &MapCache{}, NewCacheFromConfig(
		kitcfg.DefaultAddrCache(),
	))
	require.IsType(t, &LRUCache{}, NewCacheFromConfig(&kitcfg.AddrCache{
		Type: kitcfg.AddrCacheLRU,
		Size: 5,
	}))
	require.IsType(t, DisabledCache{}, NewCacheFromConfig(
		&kitcfg.AddrCache{Type: kitcfg.AddrCacheNone},
	))
}
