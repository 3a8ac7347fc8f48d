package hwdevice

import (
	"context"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/signingkey"
)

var (
	// ErrTransport is returned when the device reports a failure or the
	// connection to it breaks.
	ErrTransport = errors.New("device transport failure")

	// ErrTimeout is returned when the device doesn't answer in time.
	ErrTimeout = errors.New("device timeout")

	// ErrDeviceStopped is returned for requests made after the device was
	// stopped.
	ErrDeviceStopped = errors.New("device stopped")
)

// Transport is the connection to a signing device. Keys are addressed by
// their HD path, the private keys never leave the device.
type Transport interface {
	// PubKey returns the public key at path.
	PubKey(ctx context.Context, path keychain.HDPath) (*btcec.PublicKey,
		error)

	// Sign signs a built transaction with the key at path. If hrp is set
	// the device renders addresses with it instead of the native prefix.
	Sign(ctx context.Context, path keychain.HDPath,
		tx *signingkey.TxReadyToSign,
		hrp fn.Option[string]) (*ecdsa.Signature, error)

	// SignHash signs a 32 byte hash with the key at path.
	SignHash(ctx context.Context, path keychain.HDPath,
		hash [32]byte) (*ecdsa.Signature, error)

	// KeyExchange returns the point shared between the key at path and
	// other.
	KeyExchange(ctx context.Context, path keychain.HDPath,
		other *btcec.PublicKey,
		purpose signingkey.KeyExchangePurpose) (*btcec.PublicKey, error)

	// DisplayAddress shows the address of the key at path on the device
	// and returns its public key.
	DisplayAddress(ctx context.Context,
		path keychain.HDPath) (*btcec.PublicKey, error)
}
