package netparams

import (
	"fmt"
	"strings"
)

// Network identifies one of the deployment environments an address can be
// bound to. The set of networks is closed and fixed at compile time.
type Network uint8

const (
	// Mainnet is the production network.
	Mainnet Network = iota

	// Stokenet is the long lived public test network.
	Stokenet

	// Localnet is a network run on a developer machine.
	Localnet

	// Releasenet is the staging network used to soak release candidates.
	Releasenet

	// RCnet is the network used for protocol release candidate testing.
	RCnet

	// Milestonenet is the network used for milestone demos.
	Milestonenet

	// Testnet6 is the sixth numbered test network.
	Testnet6

	// Sandpitnet is a short lived network for experiments.
	Sandpitnet

	// numNetworks is the number of known networks. It must stay the last
	// entry of the enumeration.
	numNetworks
)

// Networks returns every known network in enumeration order.
func Networks() []Network {
	nets := make([]Network, 0, numNetworks)
	for n := Network(0); n < numNetworks; n++ {
		nets = append(nets, n)
	}

	return nets
}

// String returns the lowercase name of the network.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Stokenet:
		return "stokenet"
	case Localnet:
		return "localnet"
	case Releasenet:
		return "releasenet"
	case RCnet:
		return "rcnet"
	case Milestonenet:
		return "milestonenet"
	case Testnet6:
		return "testnet6"
	case Sandpitnet:
		return "sandpitnet"
	default:
		return fmt.Sprintf("Network(%d)", uint8(n))
	}
}

// IsValid returns true if the network is part of the enumeration.
func (n Network) IsValid() bool {
	return n < numNetworks
}

// ParseNetwork is the inverse of Network.String. Matching is case
// insensitive.
func ParseNetwork(name string) (Network, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range Networks() {
		if n.String() == name {
			return n, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

// AddressKind is the capability discriminant of an address. Each kind has its
// own prefix per network.
type AddressKind uint8

const (
	// KindAccount is the kind of addresses that hold user funds.
	KindAccount AddressKind = iota

	// KindValidator is the kind of addresses that identify validator
	// nodes.
	KindValidator

	// numKinds is the number of known address kinds.
	numKinds
)

// AddressKinds returns every known address kind.
func AddressKinds() []AddressKind {
	return []AddressKind{KindAccount, KindValidator}
}

// String returns the name of the address kind.
func (k AddressKind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindValidator:
		return "validator"
	default:
		return fmt.Sprintf("AddressKind(%d)", uint8(k))
	}
}
