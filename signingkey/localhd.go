package signingkey

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/msgencrypt"
)

// LocalHDKey is a key pair derived at an HD path from a master node held in
// this process.
type LocalHDKey struct {
	path  keychain.HDPath
	local *localKeyPair
}

// Path returns the derivation path of the key.
func (k *LocalHDKey) Path() keychain.HDPath {
	return k.path
}

// PubKey returns the public key.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) PubKey() *btcec.PublicKey {
	return k.local.signer.PubKey()
}

// Sign signs the hash of a built transaction.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) Sign(ctx context.Context,
	tx *TxReadyToSign) (*ecdsa.Signature, error) {

	return k.local.sign(ctx, tx)
}

// SignHash signs a 32 byte hash.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) SignHash(ctx context.Context,
	hash []byte) (*ecdsa.Signature, error) {

	return k.local.signHash(ctx, hash)
}

// Encrypt encrypts a message to the owner of other.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) Encrypt(ctx context.Context, plaintext []byte,
	other *btcec.PublicKey) (*msgencrypt.EncryptedMessage, error) {

	return k.local.encrypt(ctx, plaintext, other)
}

// Decrypt decrypts a message that the owner of other encrypted to us.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) Decrypt(ctx context.Context,
	msg *msgencrypt.EncryptedMessage,
	other *btcec.PublicKey) ([]byte, error) {

	return k.local.decrypt(ctx, msg, other)
}

// diffieHellman returns the point shared between this key and other.
func (k *LocalHDKey) diffieHellman(
	other *btcec.PublicKey) (*btcec.PublicKey, error) {

	return k.local.diffieHellman(other)
}

// Equals returns true if other has the same public key.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) Equals(other SigningKey) bool {
	return equalPubKeys(k, other)
}

// UniqueKey returns the identity string of the key, which is built from its
// path.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) UniqueKey() string {
	return "Local_HD_signingKey_at_path_" + k.path.String()
}

// Type returns TypeLocalHD.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) Type() KeyType {
	return TypeLocalHD
}

// HDPath returns the derivation path of the key.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) HDPath() fn.Option[keychain.HDPath] {
	return fn.Some(k.path)
}

// String returns a human readable description of the key.
//
// NOTE: This is part of the SigningKey interface.
func (k *LocalHDKey) String() string {
	return fmt.Sprintf("LocalHDKey(path=%v, pubkey=%x)", k.path,
		k.PubKey().SerializeCompressed())
}

// accept dispatches to the LocalHDKey handler.
func (k *LocalHDKey) accept(d dispatcher) {
	d.localHD(k)
}

var _ SigningKey = (*LocalHDKey)(nil)
