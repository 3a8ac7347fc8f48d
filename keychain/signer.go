package keychain

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// PrivKeyMessageSigner is an implementation of the SingleKeyMessageSigner and
// SingleKeyDigestSigner interfaces backed by a local private key.
type PrivKeyMessageSigner struct {
	// PrivKey is the key that signs.
	PrivKey *btcec.PrivateKey
}

// NewPrivKeyMessageSigner creates a new signer for the given private key.
func NewPrivKeyMessageSigner(
	privKey *btcec.PrivateKey) *PrivKeyMessageSigner {

	return &PrivKeyMessageSigner{
		PrivKey: privKey,
	}
}

// PubKey returns the public key of the wrapped private key.
//
// NOTE: This is part of the SingleKeyMessageSigner interface.
func (p *PrivKeyMessageSigner) PubKey() *btcec.PublicKey {
	return p.PrivKey.PubKey()
}

// SignDigest signs the given digest with the wrapped private key. The digest
// is signed as is, no hashing is applied.
//
// NOTE: This is part of the SingleKeyDigestSigner interface.
func (p *PrivKeyMessageSigner) SignDigest(
	digest [32]byte) (*ecdsa.Signature, error) {

	return ecdsa.Sign(p.PrivKey, digest[:]), nil
}

// SignMessage signs the given message, single or double SHA256 hashing it
// first, with the wrapped private key.
//
// NOTE: This is part of the SingleKeyMessageSigner interface.
func (p *PrivKeyMessageSigner) SignMessage(message []byte,
	doubleHash bool) (*ecdsa.Signature, error) {

	var digest []byte
	if doubleHash {
		digest = chainhash.DoubleHashB(message)
	} else {
		digest = chainhash.HashB(message)
	}

	return ecdsa.Sign(p.PrivKey, digest), nil
}

// SignMessageCompact signs the given message, single or double SHA256 hashing
// it first, with the wrapped private key and returns the signature in the
// compact, public key recoverable format.
//
// NOTE: This is part of the SingleKeyMessageSigner interface.
func (p *PrivKeyMessageSigner) SignMessageCompact(msg []byte,
	doubleHash bool) ([]byte, error) {

	var digest []byte
	if doubleHash {
		digest = chainhash.DoubleHashB(msg)
	} else {
		digest = chainhash.HashB(msg)
	}

	return ecdsa.SignCompact(p.PrivKey, digest, true), nil
}

var _ SingleKeyMessageSigner = (*PrivKeyMessageSigner)(nil)
var _ SingleKeyDigestSigner = (*PrivKeyMessageSigner)(nil)
