package main

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/msgencrypt"
	"github.com/tv42/zbase32"
	"github.com/urfave/cli"
)

// signedMsgPrefix is prepended to every message before signing so that a
// signature can't be replayed as a signature over a transaction.
var signedMsgPrefix = []byte("Walletkit Signed Message:")

// prefixedMsg returns a fresh slice holding the signed message prefix
// followed by msg.
func prefixedMsg(msg []byte) []byte {
	out := make([]byte, 0, len(signedMsgPrefix)+len(msg))
	out = append(out, signedMsgPrefix...)

	return append(out, msg...)
}

// signMessage signs the prefixed message with a recoverable signature and
// returns it zbase32 encoded.
func signMessage(priv *btcec.PrivateKey, msg []byte) (string, error) {
	signer := keychain.NewPrivKeyMessageSigner(priv)
	sig, err := signer.SignMessageCompact(
		prefixedMsg(msg), true,
	)
	if err != nil {
		return "", err
	}

	return zbase32.EncodeToString(sig), nil
}

// verifyMessage recovers the public key that produced the zbase32 encoded
// signature over the prefixed message.
func verifyMessage(msg []byte, sig string) (*btcec.PublicKey, error) {
	sigBytes, err := zbase32.DecodeString(sig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode signature: %w", err)
	}

	digest := chainhash.DoubleHashB(prefixedMsg(msg))
	pub, _, err := ecdsa.RecoverCompact(sigBytes, digest)
	if err != nil {
		return nil, fmt.Errorf("unable to recover public key: %w", err)
	}

	return pub, nil
}

var signMessageCommand = cli.Command{
	Name:      "signmessage",
	Category:  "Messages",
	Usage:     "Sign a message with a key derived from a seed.",
	ArgsUsage: "msg",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "msg",
			Usage: "the message to sign",
		},
		seedFlag,
		pathFlag,
	},
	Action: actionDecorator(signMsg),
}

func signMsg(c *cli.Context, _ *commandEnv) error {
	msg := c.String("msg")
	switch {
	case msg != "":
	case c.Args().Present():
		msg = c.Args().First()
	default:
		return fmt.Errorf("msg argument missing")
	}

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

	sig, err := signMessage(priv, []byte(msg))
	if err != nil {
		return err
	}

	printJSON(struct {
		Signature string `json:"signature"`
	}{
		Signature: sig,
	})

	return nil
}

var verifyMessageCommand = cli.Command{
	Name:      "verifymessage",
	Category:  "Messages",
	Usage:     "Recover the signer of a signed message.",
	ArgsUsage: "msg signature",
	Flags: []cli.Flag{
		kindFlag,
	},
	Action: actionDecorator(verifyMsg),
}

func verifyMsg(c *cli.Context, env *commandEnv) error {
	args := c.Args()
	if len(args) != 2 {
		return fmt.Errorf("msg and signature arguments required")
	}

	codec, err := codecFromFlags(c, env)
	if err != nil {
		return err
	}

	pub, err := verifyMessage([]byte(args[0]), args[1])
	if err != nil {
		return err
	}

	addr := codec.FromPublicKey(pub, env.cfg.Network.Params())
	printJSON(newAddressResp(addr))

	return nil
}

var encryptCommand = cli.Command{
	Name:     "encrypt",
	Category: "Messages",
	Usage:    "Encrypt a message to the owner of a public key.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "to",
			Usage: "the hex encoded public key of the recipient",
		},
		cli.StringFlag{
			Name:  "msg",
			Usage: "the message to encrypt",
		},
		seedFlag,
		pathFlag,
		hardwareFlag,
	},
	Action: actionDecorator(encrypt),
}

func encrypt(c *cli.Context, env *commandEnv) error {
	to, err := parsePubKey(c.String("to"))
	if err != nil {
		return err
	}

	key, cleanup, err := signingKeyFromFlags(c, env)
	if err != nil {
		return err
	}
	defer cleanup()

	msg, err := key.Encrypt(env.ctx, []byte(c.String("msg")), to)
	if err != nil {
		return err
	}

	ciphertext, err := msg.Hex()
	if err != nil {
		return err
	}

	printJSON(struct {
		Ciphertext string `json:"ciphertext"`
	}{
		Ciphertext: ciphertext,
	})

	return nil
}

var decryptCommand = cli.Command{
	Name:     "decrypt",
	Category: "Messages",
	Usage:    "Decrypt a message from the owner of a public key.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "from",
			Usage: "the hex encoded public key of the sender",
		},
		cli.StringFlag{
			Name:  "ciphertext",
			Usage: "the hex encoded encrypted message",
		},
		seedFlag,
		pathFlag,
		hardwareFlag,
	},
	Action: actionDecorator(decrypt),
}

func decrypt(c *cli.Context, env *commandEnv) error {
	from, err := parsePubKey(c.String("from"))
	if err != nil {
		return err
	}

	msg, err := msgencrypt.ParseEncryptedMessageHex(
		c.String("ciphertext"),
	)
	if err != nil {
		return err
	}

	key, cleanup, err := signingKeyFromFlags(c, env)
	if err != nil {
		return err
	}
	defer cleanup()

	plaintext, err := key.Decrypt(env.ctx, msg, from)
	if err != nil {
		return err
	}

	printJSON(struct {
		Plaintext string `json:"plaintext"`
		Hex       string `json:"hex"`
	}{
		Plaintext: string(plaintext),
		Hex:       hex.EncodeToString(plaintext),
	})

	return nil
}
