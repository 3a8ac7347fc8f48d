package main

import (
	"encoding/hex"

	"github.com/lightningnetwork/walletkit/address"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/netparams"
	"github.com/lightningnetwork/walletkit/signingkey"
	"github.com/urfave/cli"
)

// keyResp is the JSON form of a signing key.
type keyResp struct {
	PubKey    string `json:"pubkey"`
	UniqueKey string `json:"unique_key"`
	Type      string `json:"type"`
	Custody   string `json:"custody"`
	Path      string `json:"path,omitempty"`
	Address   string `json:"address"`
}

// custodyVisitor describes where the private key of a signing key lives.
type custodyVisitor struct{}

// VisitNonHD is part of the signingkey.Visitor interface.
func (custodyVisitor) VisitNonHD(key *signingkey.NonHDKey) string {
	if !key.HasPrivateKey() {
		return "watch only"
	}

	return "in memory"
}

// VisitLocalHD is part of the signingkey.Visitor interface.
func (custodyVisitor) VisitLocalHD(*signingkey.LocalHDKey) string {
	return "derived from seed"
}

// VisitHardwareHD is part of the signingkey.Visitor interface.
func (custodyVisitor) VisitHardwareHD(*signingkey.HardwareHDKey) string {
	return "signing device"
}

// newKeyResp converts a signing key into its JSON form, including its account
// address on the given network.
func newKeyResp(key signingkey.SigningKey, codec *address.Codec,
	net netparams.Network) *keyResp {

	resp := &keyResp{
		PubKey: hex.EncodeToString(
			key.PubKey().SerializeCompressed(),
		),
		UniqueKey: key.UniqueKey(),
		Type:      key.Type().String(),
		Custody:   signingkey.Match[string](key, custodyVisitor{}),
		Address:   codec.FromPublicKey(key.PubKey(), net).String(),
	}
	key.HDPath().WhenSome(func(p keychain.HDPath) {
		resp.Path = p.String()
	})

	return resp
}

var deriveKeyCommand = cli.Command{
	Name:     "derivekey",
	Category: "Keys",
	Usage:    "Derive a signing key and show its identity.",
	Description: `
	Derives the signing key at the given path, either from a seed or on the
	signing device, and shows its public key, unique key and address.
	`,
	Flags: []cli.Flag{
		seedFlag,
		pathFlag,
		hardwareFlag,
		kindFlag,
	},
	Action: actionDecorator(deriveKey),
}

func deriveKey(c *cli.Context, env *commandEnv) error {
	codec, err := codecFromFlags(c, env)
	if err != nil {
		return err
	}

	key, cleanup, err := signingKeyFromFlags(c, env)
	if err != nil {
		return err
	}
	defer cleanup()

	printJSON(newKeyResp(key, codec, env.cfg.Network.Params()))

	return nil
}
