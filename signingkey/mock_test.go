package signingkey

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
)

// mockHardwareKey is a HardwareSigningKey backed by a private key in memory.
type mockHardwareKey struct {
	priv *btcec.PrivateKey

	mtx      sync.Mutex
	purposes []KeyExchangePurpose
	hrps     []fn.Option[string]
}

func newMockHardwareKey(priv *btcec.PrivateKey) *mockHardwareKey {
	return &mockHardwareKey{priv: priv}
}

func (m *mockHardwareKey) PubKey() *btcec.PublicKey {
	return m.priv.PubKey()
}

func (m *mockHardwareKey) Sign(_ context.Context, tx *TxReadyToSign,
	hrp fn.Option[string]) (*ecdsa.Signature, error) {

	m.mtx.Lock()
	m.hrps = append(m.hrps, hrp)
	m.mtx.Unlock()

	return ecdsa.Sign(m.priv, tx.HashOfBlobToSign[:]), nil
}

func (m *mockHardwareKey) SignHash(_ context.Context,
	hash [32]byte) (*ecdsa.Signature, error) {

	return ecdsa.Sign(m.priv, hash[:]), nil
}

func (m *mockHardwareKey) KeyExchange(ctx context.Context,
	other *btcec.PublicKey,
	purpose KeyExchangePurpose) (*btcec.PublicKey, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mtx.Lock()
	m.purposes = append(m.purposes, purpose)
	m.mtx.Unlock()

	ecdh := &keychain.PrivKeyECDH{PrivKey: m.priv}

	return ecdh.SharedPoint(other)
}

func (m *mockHardwareKey) DisplayAddress(
	context.Context) (*btcec.PublicKey, error) {

	return m.priv.PubKey(), nil
}

var _ HardwareSigningKey = (*mockHardwareKey)(nil)
