package hwdevice

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/signingkey"
)

// Key is a handle to the device key at a fixed path.
type Key struct {
	dev    *Device
	path   keychain.HDPath
	pubKey *btcec.PublicKey
}

// Path returns the path of the key.
func (k *Key) Path() keychain.HDPath {
	return k.path
}

// PubKey returns the public key, as fetched when the handle was created.
//
// NOTE: This is part of the signingkey.HardwareSigningKey interface.
func (k *Key) PubKey() *btcec.PublicKey {
	return k.pubKey
}

// Sign has the device sign a built transaction.
//
// NOTE: This is part of the signingkey.HardwareSigningKey interface.
func (k *Key) Sign(ctx context.Context, tx *signingkey.TxReadyToSign,
	hrp fn.Option[string]) (*ecdsa.Signature, error) {

	return k.dev.Sign(ctx, k.path, tx, hrp)
}

// SignHash has the device sign a 32 byte hash.
//
// NOTE: This is part of the signingkey.HardwareSigningKey interface.
func (k *Key) SignHash(ctx context.Context,
	hash [32]byte) (*ecdsa.Signature, error) {

	return k.dev.SignHash(ctx, k.path, hash)
}

// KeyExchange has the device compute the point it shares with other.
//
// NOTE: This is part of the signingkey.HardwareSigningKey interface.
func (k *Key) KeyExchange(ctx context.Context, other *btcec.PublicKey,
	purpose signingkey.KeyExchangePurpose) (*btcec.PublicKey, error) {

	return k.dev.KeyExchange(ctx, k.path, other, purpose)
}

// DisplayAddress has the device show the address of the key.
//
// NOTE: This is part of the signingkey.HardwareSigningKey interface.
func (k *Key) DisplayAddress(ctx context.Context) (*btcec.PublicKey, error) {
	return k.dev.DisplayAddress(ctx, k.path)
}

var _ signingkey.HardwareSigningKey = (*Key)(nil)
