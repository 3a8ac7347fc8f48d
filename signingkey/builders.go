package signingkey

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
)

// FromPrivateKey creates a signing key that owns priv. With a path the key is
// a LocalHDKey, without one it is an unnamed NonHDKey.
func FromPrivateKey(priv *btcec.PrivateKey,
	path fn.Option[keychain.HDPath]) SigningKey {

	local := newLocalKeyPair(priv)

	var key SigningKey = &NonHDKey{
		pubKey: priv.PubKey(),
		name:   fn.None[string](),
		local:  local,
	}
	path.WhenSome(func(p keychain.HDPath) {
		key = &LocalHDKey{
			path:  p,
			local: local,
		}
	})

	return key
}

// ByDerivingNodeAtPath creates a LocalHDKey at path from the private key
// returned by derive.
func ByDerivingNodeAtPath(path keychain.HDPath,
	derive func() (*btcec.PrivateKey, error)) (*LocalHDKey, error) {

	priv, err := derive()
	if err != nil {
		return nil, fmt.Errorf("unable to derive key at %v: %w", path,
			err)
	}

	log.Debugf("Derived local signing key at %v", path)

	return &LocalHDKey{
		path:  path,
		local: newLocalKeyPair(priv),
	}, nil
}

// FromHDMasterNode derives the key at path from the master node. The same
// master node and path always yield the same key.
func FromHDMasterNode(master *hdkeychain.ExtendedKey,
	path keychain.HDPath) (*LocalHDKey, error) {

	return ByDerivingNodeAtPath(path, func() (*btcec.PrivateKey, error) {
		return keychain.DerivePrivKey(master, path)
	})
}

// FromHDMasterSeed derives the key at path from the master node of seed.
func FromHDMasterSeed(seed []byte,
	path keychain.HDPath) (*LocalHDKey, error) {

	return ByDerivingNodeAtPath(path, func() (*btcec.PrivateKey, error) {
		return keychain.DerivePrivKeyFromSeed(seed, path)
	})
}
