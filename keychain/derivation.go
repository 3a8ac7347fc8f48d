package keychain

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// BIP0044Purpose is the "purpose" value of the BIP44 derivation scheme
	// that all account keys are derived under.
	BIP0044Purpose = 44

	// CoinType is the registered SLIP-0044 coin type of the ledger the
	// account keys are used on.
	CoinType = 1022
)

var (
	// ErrNoMasterNode is returned when a derivation is attempted without
	// a master node.
	ErrNoMasterNode = errors.New("no master node")

	// ErrCannotDerivePrivKey is returned when the node at a path doesn't
	// carry a private key, e.g. when deriving from a neutered node.
	ErrCannotDerivePrivKey = errors.New("unable to derive private key")
)

// NewMasterNode creates the BIP32 master node for the given seed. The seed
// must be between hdkeychain.MinSeedBytes and hdkeychain.MaxSeedBytes long.
//
// NOTE: the chain parameters only affect the serialized form of the extended
// key, which is never exposed. Derived keys are identical for every network.
func NewMasterNode(seed []byte) (*hdkeychain.ExtendedKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("unable to create master node: %w", err)
	}

	return master, nil
}

// DeriveNode walks the given path starting at the master node.
func DeriveNode(master *hdkeychain.ExtendedKey,
	path HDPath) (*hdkeychain.ExtendedKey, error) {

	if master == nil {
		return nil, ErrNoMasterNode
	}

	node := master
	for _, index := range path.components {
		var err error
		node, err = node.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("unable to derive child %d of "+
				"%v: %w", index, path, err)
		}
	}

	return node, nil
}

// DerivePrivKey derives the private key at the given path from the master
// node. The same (master, path) pair always yields the same key.
func DerivePrivKey(master *hdkeychain.ExtendedKey,
	path HDPath) (*btcec.PrivateKey, error) {

	node, err := DeriveNode(master, path)
	if err != nil {
		return nil, err
	}

	privKey, err := node.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w at %v: %v", ErrCannotDerivePrivKey,
			path, err)
	}

	log.Tracef("Derived private key at %v", path)

	return privKey, nil
}

// DerivePrivKeyFromSeed derives the private key at the given path from a
// master seed.
func DerivePrivKeyFromSeed(seed []byte,
	path HDPath) (*btcec.PrivateKey, error) {

	master, err := NewMasterNode(seed)
	if err != nil {
		return nil, err
	}

	return DerivePrivKey(master, path)
}

// SingleKeyMessageSigner is an abstraction interface that hides the
// implementation of the low-level ECDSA signing operations by wrapping a
// single, specific private key.
type SingleKeyMessageSigner interface {
	// PubKey returns the public key of the wrapped private key.
	PubKey() *btcec.PublicKey

	// SignMessage signs the given message, single or double SHA256 hashing
	// it first, with the wrapped private key.
	SignMessage(message []byte, doubleHash bool) (*ecdsa.Signature, error)

	// SignMessageCompact signs the given message, single or double SHA256
	// hashing it first, with the wrapped private key and returns the
	// signature in the compact, public key recoverable format.
	SignMessageCompact(message []byte, doubleHash bool) ([]byte, error)
}

// SingleKeyDigestSigner is an abstraction interface that hides the
// implementation of signing a precomputed 32 byte digest.
type SingleKeyDigestSigner interface {
	// PubKey returns the public key of the wrapped private key.
	PubKey() *btcec.PublicKey

	// SignDigest signs the given digest with the wrapped private key.
	SignDigest(digest [32]byte) (*ecdsa.Signature, error)
}

// SingleKeyECDH is an abstraction interface that hides the implementation of an
// ECDH operation by wrapping a single, specific private key.
type SingleKeyECDH interface {
	// PubKey returns the public key of the wrapped private key.
	PubKey() *btcec.PublicKey

	// SharedPoint performs a scalar multiplication between the wrapped
	// private key and remote public key and returns the resulting point.
	SharedPoint(pubKey *btcec.PublicKey) (*btcec.PublicKey, error)

	// ECDH performs a scalar multiplication (ECDH-like operation) between
	// the wrapped private key and remote public key. The output returned
	// will be the sha256 of the resulting shared point serialized in
	// compressed format.
	ECDH(pubKey *btcec.PublicKey) ([32]byte, error)
}
