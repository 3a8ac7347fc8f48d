package msgencrypt

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/lightningnetwork/lnd/tlv"
)

const (
	// typeSalt is the record type of the key derivation salt.
	typeSalt tlv.Type = 0

	// typeNonce is the record type of the cipher nonce.
	typeNonce tlv.Type = 2

	// typeCiphertext is the record type of the sealed message.
	typeCiphertext tlv.Type = 4
)

// EncryptedMessage is a message sealed to the other party of a key agreement.
type EncryptedMessage struct {
	// Salt is the random salt the message key was derived with. It is also
	// authenticated as additional data.
	Salt [SaltSize]byte

	// Nonce is the XChaCha20-Poly1305 nonce.
	Nonce []byte

	// Ciphertext is the sealed plaintext including the authentication
	// tag.
	Ciphertext []byte
}

// records returns the TLV records of the message.
func (m *EncryptedMessage) records() []tlv.Record {
	return []tlv.Record{
		tlv.MakePrimitiveRecord(typeSalt, &m.Salt),
		tlv.MakePrimitiveRecord(typeNonce, &m.Nonce),
		tlv.MakePrimitiveRecord(typeCiphertext, &m.Ciphertext),
	}
}

// Encode writes the message to w as a TLV stream.
func (m *EncryptedMessage) Encode(w io.Writer) error {
	stream, err := tlv.NewStream(m.records()...)
	if err != nil {
		return err
	}

	return stream.Encode(w)
}

// Decode reads a message from a TLV stream.
func (m *EncryptedMessage) Decode(r io.Reader) error {
	stream, err := tlv.NewStream(m.records()...)
	if err != nil {
		return err
	}

	return stream.Decode(r)
}

// Bytes returns the TLV encoding of the message.
func (m *EncryptedMessage) Bytes() ([]byte, error) {
	var b bytes.Buffer
	if err := m.Encode(&b); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Hex returns the hex encoded TLV encoding of the message.
func (m *EncryptedMessage) Hex() (string, error) {
	b, err := m.Bytes()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// ParseEncryptedMessage decodes a message from its TLV encoding.
func ParseEncryptedMessage(b []byte) (*EncryptedMessage, error) {
	msg := &EncryptedMessage{}
	if err := msg.Decode(bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("unable to decode encrypted message: "+
			"%w", err)
	}

	return msg, nil
}

// ParseEncryptedMessageHex decodes a message from the hex form returned by
// Hex.
func ParseEncryptedMessageHex(s string) (*EncryptedMessage, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("unable to decode hex: %w", err)
	}

	return ParseEncryptedMessage(b)
}
