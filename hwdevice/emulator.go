package hwdevice

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/kitcfg"
	"github.com/lightningnetwork/walletkit/signingkey"
)

// Emulator is a Transport that keeps an HD master node in memory, the way a
// device keeps its seed. It is meant for tests and for trying out the device
// flow without hardware.
type Emulator struct {
	master *hdkeychain.ExtendedKey

	mtx     sync.Mutex
	failure error
}

// NewEmulator creates an emulated device holding the given seed.
func NewEmulator(seed []byte) (*Emulator, error) {
	master, err := keychain.NewMasterNode(seed)
	if err != nil {
		return nil, err
	}

	return &Emulator{
		master: master,
	}, nil
}

// NewEmulatorFromFile creates an emulated device from a file holding a hex
// encoded seed.
func NewEmulatorFromFile(seedFile string) (*Emulator, error) {
	content, err := os.ReadFile(kitcfg.CleanAndExpandPath(seedFile))
	if err != nil {
		return nil, fmt.Errorf("unable to read seed file: %w", err)
	}

	seed, err := hex.DecodeString(strings.TrimSpace(string(content)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode seed file: %w", err)
	}

	return NewEmulator(seed)
}

// SetFailure makes every following request fail with err, until it is called
// with nil.
func (e *Emulator) SetFailure(err error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.failure = err
}

// privKey checks for an injected failure and derives the key at path.
func (e *Emulator) privKey(ctx context.Context,
	path keychain.HDPath) (*btcec.PrivateKey, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mtx.Lock()
	failure := e.failure
	e.mtx.Unlock()

	if failure != nil {
		return nil, failure
	}

	return keychain.DerivePrivKey(e.master, path)
}

// PubKey returns the public key at path.
//
// NOTE: This is part of the Transport interface.
func (e *Emulator) PubKey(ctx context.Context,
	path keychain.HDPath) (*btcec.PublicKey, error) {

	priv, err := e.privKey(ctx, path)
	if err != nil {
		return nil, err
	}

	return priv.PubKey(), nil
}

// Sign signs the hash of a built transaction. The emulator has no screen, so
// the prefix is only logged.
//
// NOTE: This is part of the Transport interface.
func (e *Emulator) Sign(ctx context.Context, path keychain.HDPath,
	tx *signingkey.TxReadyToSign,
	hrp fn.Option[string]) (*ecdsa.Signature, error) {

	priv, err := e.privKey(ctx, path)
	if err != nil {
		return nil, err
	}

	log.DebugS(ctx, "Emulated device signing transaction",
		"path", path,
		"hrp", hrp.UnwrapOr("native"))

	signer := keychain.NewPrivKeyMessageSigner(priv)

	return signer.SignDigest(tx.HashOfBlobToSign)
}

// SignHash signs a 32 byte hash.
//
// NOTE: This is part of the Transport interface.
func (e *Emulator) SignHash(ctx context.Context, path keychain.HDPath,
	hash [32]byte) (*ecdsa.Signature, error) {

	priv, err := e.privKey(ctx, path)
	if err != nil {
		return nil, err
	}

	return keychain.NewPrivKeyMessageSigner(priv).SignDigest(hash)
}

// KeyExchange returns the point shared between the key at path and other.
//
// NOTE: This is part of the Transport interface.
func (e *Emulator) KeyExchange(ctx context.Context, path keychain.HDPath,
	other *btcec.PublicKey,
	_ signingkey.KeyExchangePurpose) (*btcec.PublicKey, error) {

	priv, err := e.privKey(ctx, path)
	if err != nil {
		return nil, err
	}

	ecdh := &keychain.PrivKeyECDH{PrivKey: priv}

	return ecdh.SharedPoint(other)
}

// DisplayAddress returns the public key at path.
//
// NOTE: This is part of the Transport interface.
func (e *Emulator) DisplayAddress(ctx context.Context,
	path keychain.HDPath) (*btcec.PublicKey, error) {

	return e.PubKey(ctx, path)
}

var _ Transport = (*Emulator)(nil)
