package netparams

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNetwork is returned when a network name or value is not
	// part of the enumeration.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrUnknownPrefix is returned when a human readable prefix doesn't
	// belong to any network.
	ErrUnknownPrefix = errors.New("unknown address prefix")

	// ErrKindMismatch is returned when a prefix is known, but belongs to a
	// different address kind than the one requested.
	ErrKindMismatch = errors.New("prefix belongs to another address kind")

	// ErrIncompleteTable is returned when a prefix table lacks an entry
	// for some network and kind.
	ErrIncompleteTable = errors.New("incomplete prefix table")

	// ErrPrefixCollision is returned when two entries of a prefix table
	// share the same prefix.
	ErrPrefixCollision = errors.New("prefix collision")
)

// Prefixes holds the human readable prefix of each address kind for a single
// network.
type Prefixes map[AddressKind]string

// PrefixTable maps every network to its prefixes.
type PrefixTable map[Network]Prefixes

// DefaultPrefixes is the prefix table of the known networks.
var DefaultPrefixes = PrefixTable{
	Mainnet: {
		KindAccount:   "rdx",
		KindValidator: "rv",
	},
	Stokenet: {
		KindAccount:   "tdx",
		KindValidator: "tv",
	},
	Localnet: {
		KindAccount:   "ddx",
		KindValidator: "dv",
	},
	Releasenet: {
		KindAccount:   "tdx3",
		KindValidator: "tv3",
	},
	RCnet: {
		KindAccount:   "tdx4",
		KindValidator: "tv4",
	},
	Milestonenet: {
		KindAccount:   "tdx5",
		KindValidator: "tv5",
	},
	Testnet6: {
		KindAccount:   "tdx6",
		KindValidator: "tv6",
	},
	Sandpitnet: {
		KindAccount:   "tdx7",
		KindValidator: "tv7",
	},
}

// DefaultRegistry is the registry built from DefaultPrefixes.
var DefaultRegistry = MustRegistry(DefaultPrefixes)

// prefixOwner is the reverse index entry of a prefix.
type prefixOwner struct {
	net  Network
	kind AddressKind
}

// Registry is an immutable two way mapping between networks and the human
// readable prefixes of each address kind. A Registry can only be constructed
// from a complete table, which makes PrefixFor total over the enumeration.
type Registry struct {
	prefixes PrefixTable
	owners   map[string]prefixOwner
}

// NewRegistry validates the given table and builds a Registry from it. Every
// network must have a prefix for every address kind and no two entries may
// share a prefix.
func NewRegistry(table PrefixTable) (*Registry, error) {
	r := &Registry{
		prefixes: make(PrefixTable, numNetworks),
		owners:   make(map[string]prefixOwner),
	}

	for _, net := range Networks() {
		entry, ok := table[net]
		if !ok {
			return nil, fmt.Errorf("%w: no prefixes for network %v",
				ErrIncompleteTable, net)
		}

		r.prefixes[net] = make(Prefixes, numKinds)
		for _, kind := range AddressKinds() {
			prefix, ok := entry[kind]
			if !ok || prefix == "" {
				return nil, fmt.Errorf("%w: no %v prefix for "+
					"network %v", ErrIncompleteTable, kind,
					net)
			}

			if owner, ok := r.owners[prefix]; ok {
				return nil, fmt.Errorf("%w: %q used by %v/%v "+
					"and %v/%v", ErrPrefixCollision, prefix,
					owner.net, owner.kind, net, kind)
			}

			r.prefixes[net][kind] = prefix
			r.owners[prefix] = prefixOwner{net: net, kind: kind}
		}
	}

	for net := range table {
		if !net.IsValid() {
			return nil, fmt.Errorf("%w: %v", ErrUnknownNetwork, net)
		}
	}

	return r, nil
}

// MustRegistry is like NewRegistry but panics if the table is invalid. It is
// meant for tables that are fixed at compile time.
func MustRegistry(table PrefixTable) *Registry {
	r, err := NewRegistry(table)
	if err != nil {
		panic(fmt.Sprintf("invalid prefix table: %v", err))
	}

	return r
}

// PrefixFor returns the human readable prefix used by addresses of the given
// kind on the given network.
func (r *Registry) PrefixFor(net Network, kind AddressKind) (string, error) {
	entry, ok := r.prefixes[net]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnknownNetwork, net)
	}

	prefix, ok := entry[kind]
	if !ok {
		return "", fmt.Errorf("%w: no %v prefix for network %v",
			ErrIncompleteTable, kind, net)
	}

	return prefix, nil
}

// NetworkFor resolves the network a prefix of the given kind belongs to. An
// unknown prefix results in ErrUnknownPrefix, a prefix of another kind in
// ErrKindMismatch.
func (r *Registry) NetworkFor(prefix string,
	kind AddressKind) (Network, error) {

	owner, ok := r.owners[prefix]
	if !ok {
		log.Tracef("Prefix %q not found in registry", prefix)

		return 0, fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}

	if owner.kind != kind {
		return 0, fmt.Errorf("%w: %q is a %v prefix of %v, want %v",
			ErrKindMismatch, prefix, owner.kind, owner.net, kind)
	}

	return owner.net, nil
}

// Entry is a single row of the registry.
type Entry struct {
	// Network is the network of this row.
	Network Network

	// Prefixes holds the prefix of every address kind.
	Prefixes Prefixes
}

// Entries returns the rows of the registry in network enumeration order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.prefixes))
	for _, net := range Networks() {
		prefixes := make(Prefixes, len(r.prefixes[net]))
		for kind, prefix := range r.prefixes[net] {
			prefixes[kind] = prefix
		}

		entries = append(entries, Entry{
			Network:  net,
			Prefixes: prefixes,
		})
	}

	return entries
}
