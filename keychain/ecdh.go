package keychain

import (
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

// ErrNilPubKey is returned when a key agreement is attempted against a nil
// public key.
var ErrNilPubKey = errors.New("nil public key")

// PrivKeyECDH is an implementation of the SingleKeyECDH in which we do have the
// full private key.
type PrivKeyECDH struct {
	// PrivKey is the private key that is used for the ECDH operation.
	PrivKey *btcec.PrivateKey
}

// PubKey returns the public key of the private key that is abstracted away by
// the interface.
//
// NOTE: This is part of the SingleKeyECDH interface.
func (p *PrivKeyECDH) PubKey() *btcec.PublicKey {
	return p.PrivKey.PubKey()
}

// SharedPoint performs a scalar multiplication between the private key and a
// remote public key and returns the shared point. If k is our private key,
// and P is the public key, the result is k*P.
//
// NOTE: This is part of the SingleKeyECDH interface.
func (p *PrivKeyECDH) SharedPoint(
	pub *btcec.PublicKey) (*btcec.PublicKey, error) {

	if pub == nil {
		return nil, ErrNilPubKey
	}

	var (
		pubJacobian btcec.JacobianPoint
		s           btcec.JacobianPoint
	)
	pub.AsJacobian(&pubJacobian)

	btcec.ScalarMultNonConst(&p.PrivKey.Key, &pubJacobian, &s)
	s.ToAffine()

	return btcec.NewPublicKey(&s.X, &s.Y), nil
}

// ECDH performs a scalar multiplication (ECDH-like operation) between the
// abstracted private key and a remote public key. The output returned will be
// the sha256 of the resulting shared point serialized in compressed format. If
// k is our private key, and P is the public key, we perform the following
// operation:
//
//	sx := k*P
//	s := sha256(sx.SerializeCompressed())
//
// NOTE: This is part of the SingleKeyECDH interface.
func (p *PrivKeyECDH) ECDH(pub *btcec.PublicKey) ([32]byte, error) {
	sPubKey, err := p.SharedPoint(pub)
	if err != nil {
		return [32]byte{}, err
	}

	return sha256.Sum256(sPubKey.SerializeCompressed()), nil
}

var _ SingleKeyECDH = (*PrivKeyECDH)(nil)
