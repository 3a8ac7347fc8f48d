package signingkey

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/msgencrypt"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	testSeed, _ = hex.DecodeString(
		"000102030405060708090a0b0c0d0e0f",
	)

	testPath = keychain.BIP44Path(0, 0, 0)

	testTx = &TxReadyToSign{
		Blob:             []byte("serialized transaction"),
		HashOfBlobToSign: chainhash.HashH([]byte("tx")),
	}
)

// newTestPrivKey returns a fresh private key.
func newTestPrivKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()

	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	return priv
}

// TestUniqueKey checks the identity string of every backend.
func TestUniqueKey(t *testing.T) {
	t.Parallel()

	priv := newTestPrivKey(t)
	pubHex := hex.EncodeToString(priv.PubKey().SerializeCompressed())

	unnamed := NewNonHD(priv.PubKey(), fn.None[string]())
	require.Equal(t, "Non_hd_pubKey"+pubHex, unnamed.UniqueKey())

	named := NewNonHD(priv.PubKey(), fn.Some("alice"))
	require.Equal(t, "Non_hd_named_alicepubKey"+pubHex, named.UniqueKey())

	owned := FromPrivateKey(priv, fn.None[keychain.HDPath]())
	require.Equal(t, unnamed.UniqueKey(), owned.UniqueKey())
	require.Equal(t, TypeNonHD, owned.Type())
	require.True(t, owned.HDPath().IsNone())

	local := FromPrivateKey(priv, fn.Some(testPath))
	require.Equal(
		t, "Local_HD_signingKey_at_path_m/44'/1022'/0'/0/0'",
		local.UniqueKey(),
	)
	require.Equal(t, TypeLocalHD, local.Type())
	require.Equal(t, testPath, local.HDPath().UnwrapOr(keychain.HDPath{}))

	hw := FromHardwareKey(testPath, newMockHardwareKey(priv))
	require.Equal(
		t, "Hardware_HD_signingKey_at_path_m/44'/1022'/0'/0/0'",
		hw.UniqueKey(),
	)
	require.Equal(t, TypeHardwareHD, hw.Type())
	require.True(t, hw.HDPath().IsSome())
}

// TestEqualsAcrossBackends asserts that keys are compared by public key only.
func TestEqualsAcrossBackends(t *testing.T) {
	t.Parallel()

	derived, err := FromHDMasterSeed(testSeed, testPath)
	require.NoError(t, err)

	priv, err := keychain.DerivePrivKeyFromSeed(testSeed, testPath)
	require.NoError(t, err)

	keys := []SigningKey{
		derived,
		NewNonHD(derived.PubKey(), fn.Some("derived")),
		FromPrivateKey(priv, fn.None[keychain.HDPath]()),
		FromPrivateKey(priv, fn.Some(keychain.NewHDPath(1, 2))),
		FromHardwareKey(testPath, newMockHardwareKey(priv)),
	}

	for _, a := range keys {
		for _, b := range keys {
			require.True(t, a.Equals(b), "%v != %v", a, b)
		}
	}

	other := FromPrivateKey(newTestPrivKey(t), fn.Some(testPath))
	for _, key := range keys {
		require.False(t, key.Equals(other))
		require.False(t, other.Equals(key))
		require.False(t, key.Equals(nil))
	}
}

// TestDeterministicDerivation asserts that derivation from the same master
// and path always yields the same key.
func TestDeterministicDerivation(t *testing.T) {
	t.Parallel()

	first, err := FromHDMasterSeed(testSeed, testPath)
	require.NoError(t, err)

	second, err := FromHDMasterSeed(testSeed, testPath)
	require.NoError(t, err)
	require.True(t, first.PubKey().IsEqual(second.PubKey()))

	master, err := keychain.NewMasterNode(testSeed)
	require.NoError(t, err)

	fromNode, err := FromHDMasterNode(master, testPath)
	require.NoError(t, err)
	require.True(t, first.Equals(fromNode))
	require.Equal(t, first.UniqueKey(), fromNode.UniqueKey())

	sibling, err := FromHDMasterNode(
		master, keychain.BIP44Path(0, 0, 1),
	)
	require.NoError(t, err)
	require.False(t, first.Equals(sibling))

	_, err = FromHDMasterNode(nil, testPath)
	require.ErrorIs(t, err, keychain.ErrNoMasterNode)

	_, err = FromHDMasterSeed([]byte{1, 2, 3}, testPath)
	require.Error(t, err)
}

// TestSign checks that every backend with a private key produces valid
// signatures.
func TestSign(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	priv := newTestPrivKey(t)
	hash := chainhash.HashB([]byte("message"))

	keys := []SigningKey{
		FromPrivateKey(priv, fn.None[keychain.HDPath]()),
		FromPrivateKey(priv, fn.Some(testPath)),
		FromHardwareKey(testPath, newMockHardwareKey(priv)),
	}

	for _, key := range keys {
		sig, err := key.Sign(ctx, testTx)
		require.NoError(t, err)
		require.True(t, sig.Verify(
			testTx.HashOfBlobToSign[:], key.PubKey(),
		))

		sig, err = key.SignHash(ctx, hash)
		require.NoError(t, err)
		require.True(t, sig.Verify(hash, key.PubKey()))

		_, err = key.SignHash(ctx, hash[:31])
		require.ErrorIs(t, err, ErrInvalidHashLength)
	}
}

// TestSignWithHRP asserts the prefix is forwarded to the device.
func TestSignWithHRP(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hw := newMockHardwareKey(newTestPrivKey(t))
	key := FromHardwareKey(testPath, hw)

	_, err := key.Sign(ctx, testTx)
	require.NoError(t, err)

	_, err = key.SignWithHRP(ctx, testTx, "tdx")
	require.NoError(t, err)

	require.Len(t, hw.hrps, 2)
	require.True(t, hw.hrps[0].IsNone())
	require.Equal(t, "tdx", hw.hrps[1].UnwrapOr(""))

	pub, err := key.DisplayAddress(ctx)
	require.NoError(t, err)
	require.True(t, pub.IsEqual(key.PubKey()))
}

// TestPublicKeyOnly asserts that a bare public key can't sign or take part in
// a key agreement.
func TestPublicKeyOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	other := newTestPrivKey(t).PubKey()
	key := NewNonHD(newTestPrivKey(t).PubKey(), fn.None[string]())
	require.False(t, key.HasPrivateKey())

	_, err := key.Sign(ctx, testTx)
	require.ErrorIs(t, err, ErrNoPrivateKey)

	_, err = key.SignHash(ctx, make([]byte, 32))
	require.ErrorIs(t, err, ErrNoPrivateKey)

	_, err = key.Encrypt(ctx, []byte("hi"), other)
	require.ErrorIs(t, err, ErrNoPrivateKey)

	_, err = key.Decrypt(ctx, &msgencrypt.EncryptedMessage{}, other)
	require.ErrorIs(t, err, ErrNoPrivateKey)

	_, err = key.diffieHellman(other)
	require.ErrorIs(t, err, ErrNoPrivateKey)
}

// TestDiffieHellmanSymmetric asserts both parties compute the same point.
func TestDiffieHellmanSymmetric(t *testing.T) {
	t.Parallel()

	alice, err := FromHDMasterSeed(testSeed, testPath)
	require.NoError(t, err)

	bobPriv := newTestPrivKey(t)
	bob, ok := FromPrivateKey(bobPriv, fn.None[keychain.HDPath]()).(*NonHDKey)
	require.True(t, ok)

	aliceShared, err := alice.diffieHellman(bob.PubKey())
	require.NoError(t, err)

	bobShared, err := bob.diffieHellman(alice.PubKey())
	require.NoError(t, err)
	require.True(t, aliceShared.IsEqual(bobShared))

	hw := newMockHardwareKey(bobPriv)
	hwShared, err := hw.KeyExchange(
		context.Background(), alice.PubKey(), PurposeEncrypt,
	)
	require.NoError(t, err)
	require.True(t, hwShared.IsEqual(aliceShared))
}

// TestEncryptDecrypt sends messages between a local key and a device key.
func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	plaintext := []byte("hey bob, it's alice")

	alice, err := FromHDMasterSeed(testSeed, testPath)
	require.NoError(t, err)

	hw := newMockHardwareKey(newTestPrivKey(t))
	bob := FromHardwareKey(keychain.BIP44Path(1, 0, 0), hw)

	msg, err := alice.Encrypt(ctx, plaintext, bob.PubKey())
	require.NoError(t, err)

	decrypted, err := bob.Decrypt(ctx, msg, alice.PubKey())
	require.NoError(t, err)
	require.Equal(t, plaintext, decrypted)

	reply, err := bob.Encrypt(ctx, []byte("hi alice"), alice.PubKey())
	require.NoError(t, err)

	decrypted, err = alice.Decrypt(ctx, reply, bob.PubKey())
	require.NoError(t, err)
	require.Equal(t, []byte("hi alice"), decrypted)

	require.Equal(
		t, []KeyExchangePurpose{PurposeDecrypt, PurposeEncrypt},
		hw.purposes,
	)

	// A third party can't read the message.
	eve := FromPrivateKey(newTestPrivKey(t), fn.None[keychain.HDPath]())
	_, err = eve.Decrypt(ctx, msg, alice.PubKey())
	require.ErrorIs(t, err, msgencrypt.ErrDecryptionFailed)
}

// TestEncryptCanceled asserts that the key agreement isn't run for a done
// context.
func TestEncryptCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hw := newMockHardwareKey(newTestPrivKey(t))
	key := FromHardwareKey(testPath, hw)

	_, err := key.Encrypt(ctx, []byte("hi"), newTestPrivKey(t).PubKey())
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, hw.purposes)

	local := FromPrivateKey(newTestPrivKey(t), fn.Some(testPath))
	_, err = local.Encrypt(ctx, []byte("hi"), key.PubKey())
	require.ErrorIs(t, err, context.Canceled)
}

// typeCounter counts the keys of each backend.
type typeCounter struct{}

func (typeCounter) VisitNonHD(*NonHDKey) KeyType { return TypeNonHD }

func (typeCounter) VisitLocalHD(*LocalHDKey) KeyType { return TypeLocalHD }

func (typeCounter) VisitHardwareHD(*HardwareHDKey) KeyType {
	return TypeHardwareHD
}

// TestMatch checks that Match dispatches on the backend.
func TestMatch(t *testing.T) {
	t.Parallel()

	priv := newTestPrivKey(t)
	keys := []SigningKey{
		NewNonHD(priv.PubKey(), fn.None[string]()),
		FromPrivateKey(priv, fn.None[keychain.HDPath]()),
		FromPrivateKey(priv, fn.Some(testPath)),
		FromHardwareKey(testPath, newMockHardwareKey(priv)),
	}

	for _, key := range keys {
		require.Equal(t, key.Type(), Match[KeyType](key, typeCounter{}))
	}
}

// TestIdentityProperties checks over random seeds and paths that derivation
// is deterministic, that equality only depends on the public key, and that
// the unique key tells the backends apart.
func TestIdentityProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), 16, 64).Draw(t, "seed")
		path := keychain.BIP44Path(
			rapid.Uint32Range(0, 10).Draw(t, "account"),
			rapid.Uint32Range(0, 1).Draw(t, "change"),
			rapid.Uint32Range(0, 1000).Draw(t, "index"),
		)

		first, err := FromHDMasterSeed(seed, path)
		require.NoError(t, err)

		second, err := FromHDMasterSeed(seed, path)
		require.NoError(t, err)
		require.True(t, first.Equals(second))
		require.Equal(t, first.UniqueKey(), second.UniqueKey())

		watchOnly := NewNonHD(first.PubKey(), fn.None[string]())
		require.True(t, watchOnly.Equals(first))
		require.True(t, first.Equals(watchOnly))
		require.NotEqual(t, watchOnly.UniqueKey(), first.UniqueKey())

		digest := chainhash.HashB(seed)
		sig, err := first.SignHash(context.Background(), digest)
		require.NoError(t, err)
		require.True(t, sig.Verify(digest, watchOnly.PubKey()))
	})
}
