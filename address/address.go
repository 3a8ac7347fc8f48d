package address

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/walletkit/netparams"
)

// Address is a decoded, immutable address. It can only be created by a Codec.
type Address struct {
	kind    *Kind
	pubKey  *btcec.PublicKey
	network netparams.Network

	// encoded is the canonical string form, derived from the fields above
	// when the address is created.
	encoded string
}

// String returns the canonical bech32 form of the address.
func (a *Address) String() string {
	return a.encoded
}

// PubKey returns the public key the address commits to.
func (a *Address) PubKey() *btcec.PublicKey {
	return a.pubKey
}

// Network returns the network the address belongs to.
func (a *Address) Network() netparams.Network {
	return a.network
}

// Discriminant returns the capability discriminant of the address.
func (a *Address) Discriminant() string {
	return a.kind.Discriminant
}

// Payload returns the versioned payload of the address.
func (a *Address) Payload() []byte {
	return a.kind.FormatPayload(a.pubKey.SerializeCompressed())
}

// Equals returns true if both addresses have the same payload and
// discriminant.
//
// NOTE: the network is not part of the identity of an address, only of its
// string form.
func (a *Address) Equals(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}

	return a.kind.Discriminant == other.kind.Discriminant &&
		bytes.Equal(a.Payload(), other.Payload())
}

// GoString implements fmt.GoStringer so that %#v doesn't dump the curve
// point.
func (a *Address) GoString() string {
	return fmt.Sprintf("Address(%v, %v, %s)", a.kind.Discriminant,
		a.network, a.encoded)
}
