package signingkey

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/msgencrypt"
)

var (
	// ErrNoPrivateKey is returned when a key that only knows its public
	// half is asked to sign or to take part in a key agreement.
	ErrNoPrivateKey = errors.New("signing key has no private key")

	// ErrInvalidHashLength is returned when a hash to sign isn't 32 bytes.
	ErrInvalidHashLength = errors.New("hash to sign must be 32 bytes")
)

// KeyType identifies the backend of a signing key.
type KeyType uint8

const (
	// TypeNonHD is a key pair that wasn't derived from an HD master node,
	// or a bare public key.
	TypeNonHD KeyType = iota

	// TypeLocalHD is a key pair derived from an HD master node held in
	// this process.
	TypeLocalHD

	// TypeHardwareHD is a key held by a signing device at an HD path. The
	// private key never enters this process.
	TypeHardwareHD
)

// String returns a human readable name of the key type.
func (t KeyType) String() string {
	switch t {
	case TypeNonHD:
		return "non_hd"
	case TypeLocalHD:
		return "local_hd"
	case TypeHardwareHD:
		return "hardware_hd"
	default:
		return fmt.Sprintf("KeyType(%d)", uint8(t))
	}
}

// TxReadyToSign is a built transaction together with the hash that has to be
// signed for it. The blob is opaque to this package.
type TxReadyToSign struct {
	// Blob is the serialized transaction.
	Blob []byte

	// HashOfBlobToSign is the digest the signature commits to.
	HashOfBlobToSign chainhash.Hash
}

// SigningKey is the capability surface shared by all key backends. The set of
// implementations is closed: NonHDKey, LocalHDKey and HardwareHDKey.
type SigningKey interface {
	// PubKey returns the public key.
	PubKey() *btcec.PublicKey

	// Sign signs the hash of a built transaction.
	Sign(ctx context.Context, tx *TxReadyToSign) (*ecdsa.Signature, error)

	// SignHash signs an arbitrary 32 byte hash.
	SignHash(ctx context.Context, hash []byte) (*ecdsa.Signature, error)

	// Encrypt encrypts a message to the owner of other.
	Encrypt(ctx context.Context, plaintext []byte,
		other *btcec.PublicKey) (*msgencrypt.EncryptedMessage, error)

	// Decrypt decrypts a message that the owner of other encrypted to us.
	Decrypt(ctx context.Context, msg *msgencrypt.EncryptedMessage,
		other *btcec.PublicKey) ([]byte, error)

	// Equals returns true if both keys have the same public key,
	// regardless of their backends.
	Equals(other SigningKey) bool

	// UniqueKey returns a stable identity string for display and lookup.
	UniqueKey() string

	// Type returns the backend of the key.
	Type() KeyType

	// HDPath returns the derivation path of the key, if it has one.
	HDPath() fn.Option[keychain.HDPath]

	// String returns a human readable description of the key.
	String() string

	// accept dispatches to the matching method of the dispatcher. It also
	// seals the interface.
	accept(d dispatcher)
}

// Visitor has one method per SigningKey implementation. Adding a backend adds
// a method here, so every Visitor has to handle it.
type Visitor[T any] interface {
	// VisitNonHD is called for a NonHDKey.
	VisitNonHD(key *NonHDKey) T

	// VisitLocalHD is called for a LocalHDKey.
	VisitLocalHD(key *LocalHDKey) T

	// VisitHardwareHD is called for a HardwareHDKey.
	VisitHardwareHD(key *HardwareHDKey) T
}

// dispatcher is the non generic form of a Visitor, since interface methods
// can't have type parameters.
type dispatcher struct {
	nonHD      func(*NonHDKey)
	localHD    func(*LocalHDKey)
	hardwareHD func(*HardwareHDKey)
}

// Match calls the method of the visitor that matches the backend of key and
// returns its result.
func Match[T any](key SigningKey, v Visitor[T]) T {
	var result T
	key.accept(dispatcher{
		nonHD: func(k *NonHDKey) {
			result = v.VisitNonHD(k)
		},
		localHD: func(k *LocalHDKey) {
			result = v.VisitLocalHD(k)
		},
		hardwareHD: func(k *HardwareHDKey) {
			result = v.VisitHardwareHD(k)
		},
	})

	return result
}

// equalPubKeys compares two keys by their public keys.
func equalPubKeys(a, b SigningKey) bool {
	if a == nil || b == nil {
		return false
	}

	aPub, bPub := a.PubKey(), b.PubKey()
	if aPub == nil || bPub == nil {
		return false
	}

	return aPub.IsEqual(bPub)
}

// toDigest checks the length of a hash to sign.
func toDigest(hash []byte) ([32]byte, error) {
	var digest [32]byte
	if len(hash) != len(digest) {
		return digest, fmt.Errorf("%w: got %d bytes",
			ErrInvalidHashLength, len(hash))
	}
	copy(digest[:], hash)

	return digest, nil
}
