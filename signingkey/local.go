package signingkey

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/kitutils"
	"github.com/lightningnetwork/walletkit/msgencrypt"
)

// localKeyPair holds the capabilities of a private key that lives in this
// process. It is shared by NonHDKey and LocalHDKey.
type localKeyPair struct {
	signer *keychain.PrivKeyMessageSigner
	ecdh   *keychain.PrivKeyECDH
}

// newLocalKeyPair wraps a private key.
func newLocalKeyPair(priv *btcec.PrivateKey) *localKeyPair {
	return &localKeyPair{
		signer: keychain.NewPrivKeyMessageSigner(priv),
		ecdh:   &keychain.PrivKeyECDH{PrivKey: priv},
	}
}

// signHash signs a 32 byte hash.
func (l *localKeyPair) signHash(ctx context.Context,
	hash []byte) (*ecdsa.Signature, error) {

	digest, err := toDigest(hash)
	if err != nil {
		return nil, err
	}

	log.TraceS(ctx, "Signing hash with local key",
		kitutils.LogPubKey("pubkey", l.signer.PubKey()),
		btclog.Hex6("hash", digest[:]))

	return l.signer.SignDigest(digest)
}

// sign signs the hash of a built transaction.
func (l *localKeyPair) sign(ctx context.Context,
	tx *TxReadyToSign) (*ecdsa.Signature, error) {

	return l.signHash(ctx, tx.HashOfBlobToSign[:])
}

// diffieHellman returns the point shared between this key and other.
func (l *localKeyPair) diffieHellman(
	other *btcec.PublicKey) (*btcec.PublicKey, error) {

	return l.ecdh.SharedPoint(other)
}

// encrypt encrypts a message to the owner of other.
func (l *localKeyPair) encrypt(ctx context.Context, plaintext []byte,
	other *btcec.PublicKey) (*msgencrypt.EncryptedMessage, error) {

	return msgencrypt.Encrypt(ctx, plaintext, dhProvider(func(
		context.Context) (*btcec.PublicKey, error) {

		return l.diffieHellman(other)
	}))
}

// decrypt decrypts a message from the owner of other.
func (l *localKeyPair) decrypt(ctx context.Context,
	msg *msgencrypt.EncryptedMessage,
	other *btcec.PublicKey) ([]byte, error) {

	return msgencrypt.Decrypt(ctx, msg, dhProvider(func(
		context.Context) (*btcec.PublicKey, error) {

		return l.diffieHellman(other)
	}))
}
