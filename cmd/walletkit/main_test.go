package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/address"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/kitcfg"
	"github.com/lightningnetwork/walletkit/netparams"
	"github.com/lightningnetwork/walletkit/signingkey"
	"github.com/stretchr/testify/require"
)

var (
	testSeed = bytes.Repeat([]byte{0x2a}, 32)

	testPath = keychain.BIP44Path(0, 0, 1)
)

const testConfig = `
[Application Options]
debuglevel=debug,HWDV=trace

[network]
network.name=stokenet

[addrcache]
addrcache.type=lru
addrcache.size=16

[device]
device.timeout=5s
`

// TestLoadConfig checks that the config file is read into the default config.
func TestLoadConfig(t *testing.T) {
	t.Parallel()

	configFile := filepath.Join(t.TempDir(), kitcfg.DefaultConfigFilename)
	require.NoError(t, os.WriteFile(configFile, []byte(testConfig), 0600))

	cfg, err := LoadConfig(configFile, true)
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	require.Equal(t, "debug,HWDV=trace", cfg.DebugLevel)
	require.Equal(t, netparams.Stokenet, cfg.Network.Params())
	require.Equal(t, kitcfg.AddrCacheLRU, cfg.AddrCache.Type)
	require.Equal(t, 16, cfg.AddrCache.Size)
	require.False(t, cfg.Device.Enable)
}

// TestLoadConfigMissing checks that a missing config file is only an error if
// it was asked for explicitly.
func TestLoadConfigMissing(t *testing.T) {
	t.Parallel()

	configFile := filepath.Join(t.TempDir(), "missing.conf")

	cfg, err := LoadConfig(configFile, false)
	require.NoError(t, err)
	require.Equal(t, defaultDebugLevel, cfg.DebugLevel)
	require.Equal(t, kitcfg.DefaultNetwork().Name, cfg.Network.Name)

	_, err = LoadConfig(configFile, true)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestValidateConfig checks that invalid sub configs and debug levels are
// rejected.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(cfg *Config)
	}{{
		name: "unknown network",
		mutate: func(cfg *Config) {
			cfg.Network.Name = "nonet"
		},
	}, {
		name: "empty lru cache",
		mutate: func(cfg *Config) {
			cfg.AddrCache.Type = kitcfg.AddrCacheLRU
			cfg.AddrCache.Size = 0
		},
	}, {
		name: "device without seed file",
		mutate: func(cfg *Config) {
			cfg.Device.Enable = true
			cfg.Device.Emulate = true
		},
	}, {
		name: "bad debug level",
		mutate: func(cfg *Config) {
			cfg.DebugLevel = "loud"
		},
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tc.mutate(&cfg)
			require.Error(t, ValidateConfig(&cfg))
		})
	}

	cfg := DefaultConfig()
	require.NoError(t, ValidateConfig(&cfg))
}

// TestSignVerifyMessage checks that verifying a signed message recovers the
// key that signed it, and only for the signed message.
func TestSignVerifyMessage(t *testing.T) {
	t.Parallel()

	priv, err := keychain.DerivePrivKeyFromSeed(testSeed, testPath)
	require.NoError(t, err)

	msg := []byte("hello walletkit")
	sig, err := signMessage(priv, msg)
	require.NoError(t, err)

	pub, err := verifyMessage(msg, sig)
	require.NoError(t, err)
	require.True(t, pub.IsEqual(priv.PubKey()))

	pub, err = verifyMessage([]byte("hello wallet"), sig)
	if err == nil {
		require.False(t, pub.IsEqual(priv.PubKey()))
	}

	_, err = verifyMessage(msg, "not zbase32!")
	require.Error(t, err)
}

// TestRenderNetworks checks that the network table lists every network with
// its prefixes.
func TestRenderNetworks(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	renderNetworks(&b, netparams.DefaultRegistry)
	out := b.String()

	for _, entry := range netparams.DefaultRegistry.Entries() {
		require.Contains(t, out, entry.Network.String())

		for _, prefix := range entry.Prefixes {
			require.Contains(t, out, " "+prefix+" ")
		}
	}
	require.Contains(t, strings.ToLower(out), "validator")
}

// TestNewKeyResp checks the JSON form of seed derived and watch only keys.
func TestNewKeyResp(t *testing.T) {
	t.Parallel()

	codec := address.NewAccountCodec(nil, nil)

	key, err := signingkey.FromHDMasterSeed(testSeed, testPath)
	require.NoError(t, err)

	resp := newKeyResp(key, codec, netparams.Stokenet)
	require.Equal(t, "local_hd", resp.Type)
	require.Equal(t, "derived from seed", resp.Custody)
	require.Equal(t, testPath.String(), resp.Path)
	require.Equal(t, key.UniqueKey(), resp.UniqueKey)
	require.True(t, strings.HasPrefix(resp.Address, "tdx1"))

	decoded, err := codec.FromString(resp.Address)
	require.NoError(t, err)
	require.True(t, decoded.PubKey().IsEqual(key.PubKey()))

	watchOnly := signingkey.NewNonHD(key.PubKey(), fn.None[string]())
	resp = newKeyResp(watchOnly, codec, netparams.Stokenet)
	require.Equal(t, "non_hd", resp.Type)
	require.Equal(t, "watch only", resp.Custody)
	require.Empty(t, resp.Path)
	require.Equal(t, hex.EncodeToString(
		key.PubKey().SerializeCompressed(),
	), resp.PubKey)
}

// TestOpenDevice checks that the configured emulated device serves the same
// keys as the seed it was set up with.
func TestOpenDevice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := DefaultConfig()
	env := &commandEnv{cfg: &cfg, ctx: ctx}

	_, _, err := openDevice(env)
	require.ErrorIs(t, err, errNoDevice)

	seedFile := filepath.Join(t.TempDir(), "device.seed")
	err = os.WriteFile(seedFile, []byte(hex.EncodeToString(testSeed)), 0600)
	require.NoError(t, err)

	cfg.Device.Enable = true
	cfg.Device.Emulate = true
	cfg.Device.SeedFile = seedFile
	require.NoError(t, ValidateConfig(&cfg))

	dev, cleanup, err := openDevice(env)
	require.NoError(t, err)
	defer cleanup()

	hwKey, err := dev.SigningKeyAt(ctx, testPath)
	require.NoError(t, err)

	localKey, err := signingkey.FromHDMasterSeed(testSeed, testPath)
	require.NoError(t, err)

	require.True(t, hwKey.Equals(localKey))
	require.NotEqual(t, hwKey.UniqueKey(), localKey.UniqueKey())

	codec := address.NewAccountCodec(nil, nil)
	resp := newKeyResp(hwKey, codec, netparams.Mainnet)
	require.Equal(t, "signing device", resp.Custody)
	require.Equal(t, "hardware_hd", resp.Type)
}
