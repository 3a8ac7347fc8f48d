package keychain

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestHDPathString checks the BIP32 notation of a few well known paths.
func TestHDPathString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "m/44'/1022'/0'/0/0'", BIP44Path(0, 0, 0).String())
	require.Equal(t, "m/44'/1022'/2'/1/7'", BIP44Path(2, 1, 7).String())
	require.Equal(t, "m", NewHDPath().String())
	require.Equal(t, "m/0/1", NewHDPath(0, 1).String())
}

// TestParseHDPath covers the accepted and rejected notations.
func TestParseHDPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		expErr bool
		exp    HDPath
	}{
		{
			name: "bip44 account path",
			path: "m/44'/1022'/0'/0/0'",
			exp:  BIP44Path(0, 0, 0),
		},
		{
			name: "h hardened marker",
			path: "m/44h/1022h/3h/0/5h",
			exp:  BIP44Path(3, 0, 5),
		},
		{
			name: "master only",
			path: "m",
			exp:  NewHDPath(),
		},
		{
			name:   "missing m",
			path:   "44'/1022'",
			expErr: true,
		},
		{
			name:   "empty component",
			path:   "m//1",
			expErr: true,
		},
		{
			name:   "not a number",
			path:   "m/44'/abc",
			expErr: true,
		},
		{
			name:   "component out of range",
			path:   "m/2147483648",
			expErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path, err := ParseHDPath(test.path)
			if test.expErr {
				require.ErrorIs(t, err, ErrInvalidPath)
				return
			}

			require.NoError(t, err)
			require.True(t, test.exp.Equal(path), path.String())
		})
	}
}

// TestHDPathCompare checks the total order of paths.
func TestHDPathCompare(t *testing.T) {
	t.Parallel()

	a := BIP44Path(0, 0, 0)
	b := BIP44Path(0, 0, 1)
	c := BIP44Path(1, 0, 0)
	prefix := NewHDPath(Hardened(44), Hardened(1022))

	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, c.Compare(b))
	require.Equal(t, 0, a.Compare(BIP44Path(0, 0, 0)))
	require.Equal(t, -1, prefix.Compare(a))
	require.Equal(t, 1, a.Compare(prefix))
}

// TestHDPathImmutable makes sure callers can't change a path through the
// slices they pass in or get back.
func TestHDPathImmutable(t *testing.T) {
	t.Parallel()

	raw := []uint32{1, 2, 3}
	path := NewHDPath(raw...)
	raw[0] = 9

	components := path.Components()
	components[1] = 9

	require.Equal(t, "m/1/2/3", path.String())
}

// TestHDPathRoundTrip asserts that formatting then parsing any path yields the
// same path.
func TestHDPathRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		components := rapid.SliceOfN(
			rapid.Uint32(), 0, 8,
		).Draw(t, "components")

		path := NewHDPath(components...)
		parsed, err := ParseHDPath(path.String())
		require.NoError(t, err)
		require.True(t, path.Equal(parsed))
		require.Equal(t, path.Len(), parsed.Len())

		for i, c := range parsed.Components() {
			require.Equal(t, components[i], c)
			require.Equal(
				t, c >= hdkeychain.HardenedKeyStart,
				components[i] >= hdkeychain.HardenedKeyStart,
			)
		}
	})
}
