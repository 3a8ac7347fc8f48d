package msgencrypt

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btclog/v2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	// MaxPlaintextSize is the largest message that can be encrypted.
	MaxPlaintextSize = 255

	// SaltSize is the size of the random salt fed into the key
	// derivation.
	SaltSize = 32

	// hkdfInfo binds derived keys to this message format.
	hkdfInfo = "walletkit-msg-v1"
)

var (
	// ErrMessageTooLong is returned when a plaintext exceeds
	// MaxPlaintextSize.
	ErrMessageTooLong = errors.New("message too long")

	// ErrDecryptionFailed is returned when a ciphertext fails
	// authentication, either because it was tampered with or because the
	// wrong shared point was used.
	ErrDecryptionFailed = errors.New("unable to decrypt message")

	// ErrNoDHPoint is returned when the key agreement produced no point.
	ErrNoDHPoint = errors.New("no Diffie-Hellman point")
)

// randReader is the source of salts and nonces.
var randReader io.Reader = rand.Reader

// DHPointProvider performs a key agreement with the other party of a message
// and returns the shared point. It may block, e.g. while a device computes the
// point, so it takes a context.
type DHPointProvider func(ctx context.Context) (*btcec.PublicKey, error)

// sharedPoint runs the provider and checks its result.
func sharedPoint(ctx context.Context,
	dhPoint DHPointProvider) (*btcec.PublicKey, error) {

	point, err := dhPoint(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to compute shared point: %w",
			err)
	}
	if point == nil {
		return nil, ErrNoDHPoint
	}

	return point, nil
}

// newCipher derives the symmetric key for a message from the shared point and
// the salt, and returns an XChaCha20-Poly1305 instance keyed with it.
func newCipher(point *btcec.PublicKey,
	salt [SaltSize]byte) (cipher.AEAD, error) {

	kdf := hkdf.New(
		sha256.New, point.SerializeCompressed(), salt[:],
		[]byte(hkdfInfo),
	)

	var key [chacha20poly1305.KeySize]byte
	if _, err := io.ReadFull(kdf, key[:]); err != nil {
		return nil, err
	}

	return chacha20poly1305.NewX(key[:])
}

// Encrypt encrypts the plaintext to the other party of the key agreement done
// by dhPoint. The shared point is only held for the duration of this call.
func Encrypt(ctx context.Context, plaintext []byte,
	dhPoint DHPointProvider) (*EncryptedMessage, error) {

	if len(plaintext) > MaxPlaintextSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d",
			ErrMessageTooLong, len(plaintext), MaxPlaintextSize)
	}

	point, err := sharedPoint(ctx, dhPoint)
	if err != nil {
		return nil, err
	}

	msg := &EncryptedMessage{}
	if _, err := io.ReadFull(randReader, msg.Salt[:]); err != nil {
		return nil, fmt.Errorf("unable to generate salt: %w", err)
	}

	aead, err := newCipher(point, msg.Salt)
	if err != nil {
		return nil, fmt.Errorf("unable to create cipher: %w", err)
	}

	msg.Nonce = make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(randReader, msg.Nonce); err != nil {
		return nil, fmt.Errorf("unable to generate nonce: %w", err)
	}

	msg.Ciphertext = aead.Seal(nil, msg.Nonce, plaintext, msg.Salt[:])

	log.TraceS(ctx, "Encrypted message",
		"plaintext_len", len(plaintext),
		btclog.Hex6("salt", msg.Salt[:]))

	return msg, nil
}

// Decrypt decrypts a message that was encrypted to us by the other party of
// the key agreement done by dhPoint.
func Decrypt(ctx context.Context, msg *EncryptedMessage,
	dhPoint DHPointProvider) ([]byte, error) {

	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrDecryptionFailed)
	}
	if len(msg.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: bad nonce size %d",
			ErrDecryptionFailed, len(msg.Nonce))
	}

	point, err := sharedPoint(ctx, dhPoint)
	if err != nil {
		return nil, err
	}

	aead, err := newCipher(point, msg.Salt)
	if err != nil {
		return nil, fmt.Errorf("unable to create cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, msg.Nonce, msg.Ciphertext, msg.Salt[:])
	if err != nil {
		log.DebugS(ctx, "Message failed authentication",
			btclog.Hex6("salt", msg.Salt[:]))

		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
