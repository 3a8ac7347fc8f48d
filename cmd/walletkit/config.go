package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/walletkit/build"
	"github.com/lightningnetwork/walletkit/kitcfg"
)

const (
	// defaultDebugLevel keeps the console quiet so it doesn't mix with the
	// command output.
	defaultDebugLevel = "warn"
)

var (
	// defaultWalletDir is the default directory holding the config file
	// and the logs.
	defaultWalletDir = btcutil.AppDataDir("walletkit", false)

	// defaultConfigFile is the default path of the config file.
	defaultConfigFile = filepath.Join(
		defaultWalletDir, kitcfg.DefaultConfigFilename,
	)
)

// Config holds the walletkit configuration, read from the config file and
// overridden by the global command line flags.
//
//nolint:lll
type Config struct {
	WalletDir  string `long:"walletdir" description:"The base directory that contains walletkit's logs and configuration file."`
	LogDir     string `long:"logdir" description:"Directory to log output."`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <global-level>,<subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems."`

	Network *kitcfg.Network `group:"network" namespace:"network"`

	AddrCache *kitcfg.AddrCache `group:"addrcache" namespace:"addrcache"`

	Device *kitcfg.Device `group:"device" namespace:"device"`

	Prometheus kitcfg.Prometheus `group:"prometheus" namespace:"prometheus"`

	LogConfig *build.LogConfig `group:"logging" namespace:"logging"`
}

// DefaultConfig returns all default values for the Config struct.
func DefaultConfig() Config {
	return Config{
		WalletDir:  defaultWalletDir,
		LogDir:     filepath.Join(defaultWalletDir, kitcfg.DefaultLogDirname),
		DebugLevel: defaultDebugLevel,
		Network:    kitcfg.DefaultNetwork(),
		AddrCache:  kitcfg.DefaultAddrCache(),
		Device:     kitcfg.DefaultDevice(),
		Prometheus: kitcfg.DefaultPrometheus(),
		LogConfig:  build.DefaultLogConfig(),
	}
}

// LoadConfig reads the config file at configFile into a default config. A
// missing file is only an error if required is set.
func LoadConfig(configFile string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	configFile = kitcfg.CleanAndExpandPath(configFile)
	parser := flags.NewParser(&cfg, flags.Default)
	err := flags.NewIniParser(parser).ParseFile(configFile)
	switch {
	case err == nil:

	case errors.Is(err, os.ErrNotExist) && !required:

	default:
		return nil, fmt.Errorf("unable to load config file %v: %w",
			configFile, err)
	}

	return &cfg, nil
}

// ValidateConfig expands the paths of the config and checks its sub configs.
func ValidateConfig(cfg *Config) error {
	cfg.WalletDir = kitcfg.CleanAndExpandPath(cfg.WalletDir)
	cfg.LogDir = kitcfg.CleanAndExpandPath(cfg.LogDir)
	cfg.Device.SeedFile = kitcfg.CleanAndExpandPath(cfg.Device.SeedFile)

	err := kitcfg.Validate(
		cfg.Network, cfg.AddrCache, cfg.Device, cfg.LogConfig,
	)
	if err != nil {
		return err
	}

	if !validDebugLevel(cfg.DebugLevel) {
		return fmt.Errorf("invalid debuglevel %q", cfg.DebugLevel)
	}

	return nil
}

// validDebugLevel checks a debug level string against a throwaway
// logger manager.
func validDebugLevel(level string) bool {
	mgr := build.NewSubLoggerManager()
	for _, subsystem := range subsystems() {
		mgr.GenSubLogger(subsystem, func() {})
	}

	return build.ParseAndSetDebugLevels(level, mgr) == nil
}
