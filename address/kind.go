package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/walletkit/netparams"
)

const (
	// AccountVersionByte is the version byte of account payloads.
	AccountVersionByte byte = 0x04

	// ValidatorVersionByte is the version byte of validator payloads.
	ValidatorVersionByte byte = 0x05

	// DefaultMaxLength is the maximum length of an encoded address string
	// of the built in kinds.
	DefaultMaxLength = 300

	// payloadLength is the length of a versioned payload: the version
	// byte followed by a compressed public key.
	payloadLength = 1 + btcec.PubKeyBytesLenCompressed
)

// Kind describes one kind of address: the version byte of its payload, the
// capability discriminant and the prefix column of the registry it uses.
type Kind struct {
	// Discriminant names the capability of addresses of this kind.
	Discriminant string

	// AddressKind selects the registry prefixes of this kind.
	AddressKind netparams.AddressKind

	// VersionByte is prepended to the key material of every payload.
	VersionByte byte

	// MaxLength is the maximum length of an encoded address string.
	MaxLength int
}

// AccountKind is the kind of account addresses.
var AccountKind = Kind{
	Discriminant: "account",
	AddressKind:  netparams.KindAccount,
	VersionByte:  AccountVersionByte,
	MaxLength:    DefaultMaxLength,
}

// ValidatorKind is the kind of validator addresses.
var ValidatorKind = Kind{
	Discriminant: "validator",
	AddressKind:  netparams.KindValidator,
	VersionByte:  ValidatorVersionByte,
	MaxLength:    DefaultMaxLength,
}

// FormatPayload returns the versioned payload for the given key material.
func (k *Kind) FormatPayload(keyBytes []byte) []byte {
	payload := make([]byte, 0, len(keyBytes)+1)
	payload = append(payload, k.VersionByte)

	return append(payload, keyBytes...)
}

// ExtractKeyBytes checks the version byte of a payload and returns the key
// material that follows it. It is the inverse of FormatPayload.
func (k *Kind) ExtractKeyBytes(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrVersionMismatch)
	}

	if payload[0] != k.VersionByte {
		return nil, fmt.Errorf("%w: got 0x%02x, want 0x%02x",
			ErrVersionMismatch, payload[0], k.VersionByte)
	}

	keyBytes := make([]byte, len(payload)-1)
	copy(keyBytes, payload[1:])

	return keyBytes, nil
}

// String returns the discriminant of the kind.
func (k *Kind) String() string {
	return k.Discriminant
}
