package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/lnd/healthcheck"
	"github.com/lightningnetwork/walletkit/address"
	"github.com/lightningnetwork/walletkit/build"
	"github.com/lightningnetwork/walletkit/hwdevice"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/netparams"
	"github.com/lightningnetwork/walletkit/signingkey"
	"github.com/urfave/cli"
)

var (
	seedFlag = cli.StringFlag{
		Name: "seed",
		Usage: "the hex encoded HD seed; if not set, the seed is " +
			"read from the terminal",
	}

	pathFlag = cli.StringFlag{
		Name:  "path",
		Value: keychain.BIP44Path(0, 0, 0).String(),
		Usage: "the BIP32 derivation path of the key",
	}

	hardwareFlag = cli.BoolFlag{
		Name: "hardware",
		Usage: "use the key held by the signing device configured " +
			"in the device section of the config file",
	}

	kindFlag = cli.StringFlag{
		Name:  "kind",
		Value: address.AccountKind.Discriminant,
		Usage: "the kind of address, either 'account' or 'validator'",
	}
)

// errNoDevice is returned when a hardware key is requested without a
// configured device.
var errNoDevice = errors.New("no signing device configured, set " +
	"device.enable in the config file")

// codecFromFlags returns the codec for the address kind selected by the kind
// flag.
func codecFromFlags(c *cli.Context, env *commandEnv) (*address.Codec, error) {
	cache := address.NewCacheFromConfig(env.cfg.AddrCache)

	switch c.String(kindFlag.Name) {
	case address.AccountKind.Discriminant:
		return address.NewAccountCodec(netparams.DefaultRegistry, cache),
			nil

	case address.ValidatorKind.Discriminant:
		return address.NewValidatorCodec(
			netparams.DefaultRegistry, cache,
		), nil

	default:
		return nil, fmt.Errorf("unknown address kind %q",
			c.String(kindFlag.Name))
	}
}

// parsePubKey parses a hex encoded public key.
func parsePubKey(pubHex string) (*btcec.PublicKey, error) {
	pubBytes, err := hex.DecodeString(pubHex)
	if err != nil {
		return nil, fmt.Errorf("unable to decode public key: %w", err)
	}

	return btcec.ParsePubKey(pubBytes)
}

// seedFromFlags returns the seed given by the seed flag, or reads it from the
// terminal.
func seedFromFlags(c *cli.Context) ([]byte, error) {
	seedHex := c.String(seedFlag.Name)
	if seedHex == "" {
		input, err := readPassword("Input hex encoded seed: ")
		if err != nil {
			return nil, err
		}
		seedHex = string(input)
	}

	seed, err := hex.DecodeString(strings.TrimSpace(seedHex))
	if err != nil {
		return nil, fmt.Errorf("unable to decode seed: %w", err)
	}

	return seed, nil
}

// openDevice connects to the configured signing device and starts its health
// check. The returned function stops both.
func openDevice(env *commandEnv) (*hwdevice.Device, func(), error) {
	cfg := env.cfg.Device
	if !cfg.Enable {
		return nil, nil, errNoDevice
	}

	if build.IsProdBuild() {
		log.Warnf("Using an emulated signing device, its seed is " +
			"held in memory")
	}

	emulator, err := hwdevice.NewEmulatorFromFile(cfg.SeedFile)
	if err != nil {
		return nil, nil, err
	}

	dev := hwdevice.NewDevice(&hwdevice.Config{
		Transport: emulator,
		Timeout:   cfg.Timeout,
	})
	if err := dev.Start(); err != nil {
		return nil, nil, err
	}

	if cfg.HealthCheckInterval == 0 {
		return dev, func() { _ = dev.Stop() }, nil
	}

	monitor := healthcheck.NewMonitor(&healthcheck.Config{
		Checks: []*healthcheck.Observation{
			hwdevice.NewHealthCheck(dev, cfg),
		},
		Shutdown: func(format string, params ...interface{}) {
			log.Criticalf("Signing device is unreachable: "+format,
				params...)
		},
	})
	if err := monitor.Start(); err != nil {
		_ = dev.Stop()
		return nil, nil, err
	}

	cleanup := func() {
		if err := monitor.Stop(); err != nil {
			log.Errorf("Unable to stop health monitor: %v", err)
		}
		_ = dev.Stop()
	}

	return dev, cleanup, nil
}

// signingKeyFromFlags returns the signing key selected by the seed, path and
// hardware flags. The returned function releases the key's resources.
func signingKeyFromFlags(c *cli.Context,
	env *commandEnv) (signingkey.SigningKey, func(), error) {

	path, err := keychain.ParseHDPath(c.String(pathFlag.Name))
	if err != nil {
		return nil, nil, err
	}

	if c.Bool(hardwareFlag.Name) {
		dev, cleanup, err := openDevice(env)
		if err != nil {
			return nil, nil, err
		}

		key, err := dev.SigningKeyAt(env.ctx, path)
		if err != nil {
			cleanup()
			return nil, nil, err
		}

		return key, cleanup, nil
	}

	seed, err := seedFromFlags(c)
	if err != nil {
		return nil, nil, err
	}

	key, err := signingkey.FromHDMasterSeed(seed, path)
	if err != nil {
		return nil, nil, err
	}

	return key, func() {}, nil
}
