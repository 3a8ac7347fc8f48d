package signingkey

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/kitutils"
	"github.com/lightningnetwork/walletkit/msgencrypt"
)

// HardwareSigningKey is a handle to a key held by a signing device. Every
// call except PubKey may block on the device, and fails if the device doesn't
// answer before the context is done.
type HardwareSigningKey interface {
	// PubKey returns the public key, which the handle fetched when it
	// was created.
	PubKey() *btcec.PublicKey

	// Sign has the device sign a built transaction. The device shows the
	// transaction to its user, rendering addresses with hrp if one is
	// given.
	Sign(ctx context.Context, tx *TxReadyToSign,
		hrp fn.Option[string]) (*ecdsa.Signature, error)

	// SignHash has the device sign a 32 byte hash.
	SignHash(ctx context.Context, hash [32]byte) (*ecdsa.Signature, error)

	// KeyExchange has the device compute the point it shares with other.
	KeyExchange(ctx context.Context, other *btcec.PublicKey,
		purpose KeyExchangePurpose) (*btcec.PublicKey, error)

	// DisplayAddress has the device show the address of its key so the
	// user can compare it with what the wallet shows.
	DisplayAddress(ctx context.Context) (*btcec.PublicKey, error)
}

// HardwareHDKey is a key held by a signing device at an HD path.
type HardwareHDKey struct {
	path keychain.HDPath
	hw   HardwareSigningKey
}

// FromHardwareKey creates a signing key backed by a device key at the given
// path.
func FromHardwareKey(path keychain.HDPath,
	hw HardwareSigningKey) *HardwareHDKey {

	return &HardwareHDKey{
		path: path,
		hw:   hw,
	}
}

// Path returns the derivation path of the key.
func (k *HardwareHDKey) Path() keychain.HDPath {
	return k.path
}

// PubKey returns the public key.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) PubKey() *btcec.PublicKey {
	return k.hw.PubKey()
}

// Sign has the device sign the hash of a built transaction.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) Sign(ctx context.Context,
	tx *TxReadyToSign) (*ecdsa.Signature, error) {

	return k.sign(ctx, tx, fn.None[string]())
}

// SignWithHRP is like Sign, but has the device render addresses with the
// given human readable prefix instead of the native one.
func (k *HardwareHDKey) SignWithHRP(ctx context.Context, tx *TxReadyToSign,
	hrp string) (*ecdsa.Signature, error) {

	return k.sign(ctx, tx, fn.Some(hrp))
}

// sign forwards a transaction to the device.
func (k *HardwareHDKey) sign(ctx context.Context, tx *TxReadyToSign,
	hrp fn.Option[string]) (*ecdsa.Signature, error) {

	log.DebugS(ctx, "Requesting transaction signature from device",
		"path", k.path,
		kitutils.LogPubKey("pubkey", k.PubKey()),
		"tx_len", len(tx.Blob))

	return k.hw.Sign(ctx, tx, hrp)
}

// SignHash has the device sign a 32 byte hash.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) SignHash(ctx context.Context,
	hash []byte) (*ecdsa.Signature, error) {

	digest, err := toDigest(hash)
	if err != nil {
		return nil, err
	}

	return k.hw.SignHash(ctx, digest)
}

// DisplayAddress has the device show the address of the key.
func (k *HardwareHDKey) DisplayAddress(
	ctx context.Context) (*btcec.PublicKey, error) {

	return k.hw.DisplayAddress(ctx)
}

// keyExchange returns a point provider that asks the device for the point
// shared with other.
func (k *HardwareHDKey) keyExchange(other *btcec.PublicKey,
	purpose KeyExchangePurpose) msgencrypt.DHPointProvider {

	return dhProvider(func(ctx context.Context) (*btcec.PublicKey,
		error) {

		log.DebugS(ctx, "Requesting key exchange from device",
			"path", k.path,
			"purpose", purpose,
			kitutils.LogPubKey("other", other))

		return k.hw.KeyExchange(ctx, other, purpose)
	})
}

// Encrypt encrypts a message to the owner of other, with the device doing the
// key agreement.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) Encrypt(ctx context.Context, plaintext []byte,
	other *btcec.PublicKey) (*msgencrypt.EncryptedMessage, error) {

	return msgencrypt.Encrypt(
		ctx, plaintext, k.keyExchange(other, PurposeEncrypt),
	)
}

// Decrypt decrypts a message that the owner of other encrypted to us, with
// the device doing the key agreement.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) Decrypt(ctx context.Context,
	msg *msgencrypt.EncryptedMessage,
	other *btcec.PublicKey) ([]byte, error) {

	return msgencrypt.Decrypt(
		ctx, msg, k.keyExchange(other, PurposeDecrypt),
	)
}

// Equals returns true if other has the same public key.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) Equals(other SigningKey) bool {
	return equalPubKeys(k, other)
}

// UniqueKey returns the identity string of the key, which is built from its
// path.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) UniqueKey() string {
	return "Hardware_HD_signingKey_at_path_" + k.path.String()
}

// Type returns TypeHardwareHD.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) Type() KeyType {
	return TypeHardwareHD
}

// HDPath returns the derivation path of the key.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) HDPath() fn.Option[keychain.HDPath] {
	return fn.Some(k.path)
}

// String returns a human readable description of the key.
//
// NOTE: This is part of the SigningKey interface.
func (k *HardwareHDKey) String() string {
	return fmt.Sprintf("HardwareHDKey(path=%v, pubkey=%x)", k.path,
		k.PubKey().SerializeCompressed())
}

// accept dispatches to the HardwareHDKey handler.
func (k *HardwareHDKey) accept(d dispatcher) {
	d.hardwareHD(k)
}

var _ SigningKey = (*HardwareHDKey)(nil)
