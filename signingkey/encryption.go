package signingkey

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/walletkit/msgencrypt"
)

// KeyExchangePurpose tells a signing device what a key agreement is for. A
// device may ask its user to confirm each purpose differently.
type KeyExchangePurpose uint8

const (
	// PurposeEncrypt is a key agreement for encrypting a message.
	PurposeEncrypt KeyExchangePurpose = iota

	// PurposeDecrypt is a key agreement for decrypting a message.
	PurposeDecrypt
)

// String returns the name of the purpose.
func (p KeyExchangePurpose) String() string {
	switch p {
	case PurposeEncrypt:
		return "encrypt"
	case PurposeDecrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}

// dhProvider turns a key agreement into the point provider used by
// msgencrypt. The point is computed on every call and never stored.
func dhProvider(dh func(context.Context) (*btcec.PublicKey,
	error)) msgencrypt.DHPointProvider {

	return func(ctx context.Context) (*btcec.PublicKey, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return dh(ctx)
	}
}
