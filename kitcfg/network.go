package kitcfg

import (
	"fmt"

	"github.com/lightningnetwork/walletkit/netparams"
)

// Network holds the network addresses are encoded for and decoded against.
//
//nolint:lll
type Network struct {
	Name string `long:"name" description:"The network addresses belong to." choice:"mainnet" choice:"stokenet" choice:"localnet" choice:"releasenet" choice:"rcnet" choice:"milestonenet" choice:"testnet6" choice:"sandpitnet"`
}

// DefaultNetwork returns the default network config.
func DefaultNetwork() *Network {
	return &Network{
		Name: netparams.Mainnet.String(),
	}
}

// Validate checks that the network name is known.
//
// NOTE: This is part of the Validator interface.
func (n *Network) Validate() error {
	if _, err := netparams.ParseNetwork(n.Name); err != nil {
		return fmt.Errorf("invalid network config: %w", err)
	}

	return nil
}

// Params returns the configured network. It must only be called on a
// validated config.
func (n *Network) Params() netparams.Network {
	net, err := netparams.ParseNetwork(n.Name)
	if err != nil {
		panic(fmt.Sprintf("unvalidated network config: %v", err))
	}

	return net
}
