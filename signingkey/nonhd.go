package signingkey

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/msgencrypt"
)

// NonHDKey is a key that wasn't derived from an HD master node. It either
// owns its private key, or only knows the public key, in which case it can
// only be used for identity and comparison.
type NonHDKey struct {
	pubKey *btcec.PublicKey
	name   fn.Option[string]

	// local is nil for identity only keys.
	local *localKeyPair
}

// NewNonHD creates an identity only key from a public key. All operations
// that need the private key fail with ErrNoPrivateKey.
func NewNonHD(pub *btcec.PublicKey, name fn.Option[string]) *NonHDKey {
	return &NonHDKey{
		pubKey: pub,
		name:   name,
	}
}

// Name returns the name of the key, if it has one.
func (k *NonHDKey) Name() fn.Option[string] {
	return k.name
}

// HasPrivateKey returns true if the key can sign.
func (k *NonHDKey) HasPrivateKey() bool {
	return k.local != nil
}

// PubKey returns the public key.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) PubKey() *btcec.PublicKey {
	return k.pubKey
}

// Sign signs the hash of a built transaction.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) Sign(ctx context.Context,
	tx *TxReadyToSign) (*ecdsa.Signature, error) {

	if k.local == nil {
		return nil, ErrNoPrivateKey
	}

	return k.local.sign(ctx, tx)
}

// SignHash signs a 32 byte hash.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) SignHash(ctx context.Context,
	hash []byte) (*ecdsa.Signature, error) {

	if k.local == nil {
		return nil, ErrNoPrivateKey
	}

	return k.local.signHash(ctx, hash)
}

// Encrypt encrypts a message to the owner of other.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) Encrypt(ctx context.Context, plaintext []byte,
	other *btcec.PublicKey) (*msgencrypt.EncryptedMessage, error) {

	if k.local == nil {
		return nil, ErrNoPrivateKey
	}

	return k.local.encrypt(ctx, plaintext, other)
}

// Decrypt decrypts a message that the owner of other encrypted to us.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) Decrypt(ctx context.Context,
	msg *msgencrypt.EncryptedMessage,
	other *btcec.PublicKey) ([]byte, error) {

	if k.local == nil {
		return nil, ErrNoPrivateKey
	}

	return k.local.decrypt(ctx, msg, other)
}

// diffieHellman returns the point shared between this key and other.
func (k *NonHDKey) diffieHellman(
	other *btcec.PublicKey) (*btcec.PublicKey, error) {

	if k.local == nil {
		return nil, ErrNoPrivateKey
	}

	return k.local.diffieHellman(other)
}

// Equals returns true if other has the same public key.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) Equals(other SigningKey) bool {
	return equalPubKeys(k, other)
}

// UniqueKey returns the identity string of the key, which is built from its
// name and public key.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) UniqueKey() string {
	var named string
	k.name.WhenSome(func(name string) {
		named = "named_" + name
	})

	return "Non_hd_" + named + "pubKey" +
		hex.EncodeToString(k.pubKey.SerializeCompressed())
}

// Type returns TypeNonHD.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) Type() KeyType {
	return TypeNonHD
}

// HDPath always returns None.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) HDPath() fn.Option[keychain.HDPath] {
	return fn.None[keychain.HDPath]()
}

// String returns a human readable description of the key.
//
// NOTE: This is part of the SigningKey interface.
func (k *NonHDKey) String() string {
	return fmt.Sprintf("NonHDKey(%s, private_key=%v)", k.UniqueKey(),
		k.HasPrivateKey())
}

// accept dispatches to the NonHDKey handler.
func (k *NonHDKey) accept(d dispatcher) {
	d.nonHD(k)
}

var _ SigningKey = (*NonHDKey)(nil)
