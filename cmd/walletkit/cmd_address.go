package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lightningnetwork/walletkit/address"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/kitutils"
	"github.com/lightningnetwork/walletkit/netparams"
	"github.com/urfave/cli"
)

// addressResp is the JSON form of a decoded or freshly encoded address.
type addressResp struct {
	Address string `json:"address"`
	Network string `json:"network"`
	Kind    string `json:"kind"`
	PubKey  string `json:"pubkey"`
	Payload string `json:"payload"`
}

// newAddressResp converts an address into its JSON form.
func newAddressResp(addr *address.Address) *addressResp {
	return &addressResp{
		Address: addr.String(),
		Network: addr.Network().String(),
		Kind:    addr.Discriminant(),
		PubKey: hex.EncodeToString(
			addr.PubKey().SerializeCompressed(),
		),
		Payload: hex.EncodeToString(addr.Payload()),
	}
}

var networksCommand = cli.Command{
	Name:     "networks",
	Category: "Addresses",
	Usage:    "List the known networks and their address prefixes.",
	Action:   actionDecorator(networks),
}

func networks(_ *cli.Context, _ *commandEnv) error {
	renderNetworks(os.Stdout, netparams.DefaultRegistry)
	return nil
}

// renderNetworks writes a table with the prefixes of every network in the
// registry to w.
func renderNetworks(w io.Writer, registry *netparams.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	kinds := kitutils.Map(
		netparams.AddressKinds(),
		func(k netparams.AddressKind) interface{} {
			return k.String()
		},
	)
	t.AppendHeader(append(table.Row{"Network"}, kinds...))

	for _, entry := range registry.Entries() {
		row := table.Row{entry.Network.String()}
		for _, kind := range netparams.AddressKinds() {
			row = append(row, entry.Prefixes[kind])
		}
		t.AppendRow(row)
	}

	t.Render()
}

var newAddressCommand = cli.Command{
	Name:      "newaddress",
	Category:  "Addresses",
	Usage:     "Encode a public key as an address.",
	ArgsUsage: "[pubkey]",
	Description: `
	Encodes a public key as an address on the configured network. The key
	is either given as a hex encoded compressed public key, or derived from
	a seed at the given path.
	`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "pubkey",
			Usage: "the hex encoded compressed public key",
		},
		cli.BoolFlag{
			Name: "derive",
			Usage: "derive the public key from a seed instead of " +
				"passing it in",
		},
		seedFlag,
		pathFlag,
		kindFlag,
	},
	Action: actionDecorator(newAddress),
}

func newAddress(c *cli.Context, env *commandEnv) error {
	codec, err := codecFromFlags(c, env)
	if err != nil {
		return err
	}

	var pub *btcec.PublicKey
	switch {
	case c.Bool("derive"):
		path, err := keychain.ParseHDPath(c.String(pathFlag.Name))
		if err != nil {
			return err
		}

		seed, err := seedFromFlags(c)
		if err != nil {
			return err
		}

		priv, err := keychain.DerivePrivKeyFromSeed(seed, path)
		if err != nil {
			return err
		}
		pub = priv.PubKey()

	case c.IsSet("pubkey"):
		pub, err = parsePubKey(c.String("pubkey"))
		if err != nil {
			return err
		}

	case c.Args().Present():
		pub, err = parsePubKey(c.Args().First())
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("pubkey argument missing")
	}

	addr := codec.FromPublicKey(pub, env.cfg.Network.Params())
	printJSON(newAddressResp(addr))

	return nil
}

var decodeAddressCommand = cli.Command{
	Name:      "decodeaddress",
	Category:  "Addresses",
	Usage:     "Decode an address into its network and public key.",
	ArgsUsage: "address",
	Flags: []cli.Flag{
		kindFlag,
	},
	Action: actionDecorator(decodeAddress),
}

func decodeAddress(c *cli.Context, env *commandEnv) error {
	if !c.Args().Present() {
		return fmt.Errorf("address argument missing")
	}

	codec, err := codecFromFlags(c, env)
	if err != nil {
		return err
	}

	addr, err := codec.FromString(c.Args().First())
	if err != nil {
		return err
	}

	if addr.Network() != env.cfg.Network.Params() {
		log.Warnf("Address %v belongs to %v, not to the configured "+
			"network %v", addr, addr.Network(),
			env.cfg.Network.Params())
	}

	printJSON(newAddressResp(addr))

	return nil
}
