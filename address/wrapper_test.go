package address

import (
	"strings"
	"testing"

	"github.com/lightningnetwork/walletkit/netparams"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"
)

// TestWrapperConsistency asserts that wrappers built from the string and the
// address of one key agree on both forms.
func TestWrapperConsistency(t *testing.T) {
	t.Parallel()

	codec := NewAccountCodec(nil, nil)

	rapid.Check(t, func(t *rapid.T) {
		pub := genPubKey(t)
		net := genNetwork(t)
		addr := codec.FromPublicKey(pub, net)

		fromAddr := WrapAddress(codec, addr)
		fromString := WrapString(codec, addr.String())
		fromBuffer := WrapBuffer(codec, addr.Payload(), net)

		require.Equal(t, stateAddressOnly, fromAddr.state)
		require.Equal(t, stateStringOnly, fromString.state)

		require.True(t, fromAddr.Equals(fromString))
		require.True(t, fromString.Equals(fromBuffer))
		require.True(t, fromBuffer.Equals(fromAddr))

		require.Equal(t, stateBoth, fromAddr.state)
		require.Equal(t, stateBoth, fromString.state)

		require.Equal(t, addr.String(), fromString.String())
		require.True(t, addr.Equals(fromString.Address()))

		// An all upper case string is valid too, and both forms of
		// its wrapper must still agree.
		upper := strings.ToUpper(addr.String())
		fromUpper := WrapString(codec, upper)
		upperAddr := fromUpper.Address()
		require.Equal(t, upperAddr.String(), fromUpper.AddressString())
		require.Equal(t, upper, fromUpper.String())
		require.True(t, upperAddr.Equals(addr))
		require.True(t, fromUpper.Equals(WrapAddress(codec, upperAddr)))
	})
}

// TestWrapperResolvesOnce asserts that a resolved form is never recomputed.
func TestWrapperResolvesOnce(t *testing.T) {
	t.Parallel()

	codec := NewAccountCodec(nil, DisabledCache{})
	addr := codec.FromPublicKey(newTestKey(t), netparams.Mainnet)

	w := WrapString(codec, addr.String())
	first := w.Address()
	require.Same(t, first, w.Address())
}

// TestWrapperConcurrentResolve resolves one wrapper from many goroutines.
func TestWrapperConcurrentResolve(t *testing.T) {
	t.Parallel()

	const numReaders = 16

	codec := NewAccountCodec(nil, DisabledCache{})
	addr := codec.FromPublicKey(newTestKey(t), netparams.Testnet6)
	w := WrapString(codec, addr.String())

	results := make([]*Address, numReaders)

	var eg errgroup.Group
	for i := 0; i < numReaders; i++ {
		eg.Go(func() error {
			results[i] = w.Address()
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	for _, res := range results {
		require.Same(t, results[0], res)
	}
}

// TestWrapperPanics asserts that unresolvable input is fatal at this layer.
func TestWrapperPanics(t *testing.T) {
	t.Parallel()

	codec := NewAccountCodec(nil, nil)

	w := WrapString(codec, "rdx1notanaddress")
	require.Equal(t, "rdx1notanaddress", w.AddressString())
	require.Panics(t, func() {
		w.Address()
	})

	// Comparing with itself resolves the address too.
	garbage := WrapString(codec, "garbage")
	require.Panics(t, func() {
		garbage.Equals(garbage)
	})

	require.Panics(t, func() {
		WrapBuffer(codec, []byte{0x01, 0x02}, netparams.Mainnet)
	})
}

// TestWrapperInequality checks wrappers of different keys.
func TestWrapperInequality(t *testing.T) {
	t.Parallel()

	codec := NewAccountCodec(nil, nil)
	a := WrapAddress(
		codec, codec.FromPublicKey(newTestKey(t), netparams.Mainnet),
	)
	b := WrapAddress(
		codec, codec.FromPublicKey(newTestKey(t), netparams.Mainnet),
	)

	require.False(t, a.Equals(b))
	require.False(t, a.Equals(nil))
	require.True(t, a.Equals(a))
}
