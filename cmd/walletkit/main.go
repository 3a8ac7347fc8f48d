package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/lightningnetwork/walletkit/build"
	"github.com/lightningnetwork/walletkit/kitcfg"
	"github.com/lightningnetwork/walletkit/monitoring"
	"github.com/lightningnetwork/walletkit/netparams"
	"github.com/lightningnetwork/walletkit/signal"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[walletkit] %v\n", err)
	os.Exit(1)
}

// printJSON prints the value as indented JSON to stdout.
func printJSON(resp interface{}) {
	b, err := json.Marshal(resp)
	if err != nil {
		fatal(err)
	}

	var out bytes.Buffer
	_ = json.Indent(&out, b, "", "\t")
	out.WriteString("\n")
	_, _ = out.WriteTo(os.Stdout)
}

// commandEnv is what every command gets to work with: the loaded config and a
// context that is canceled on interrupt.
type commandEnv struct {
	cfg *Config
	ctx context.Context
}

// actionDecorator loads the config, sets up logging and interrupt handling,
// and then runs the command.
func actionDecorator(f func(*cli.Context, *commandEnv) error) func(
	*cli.Context) error {

	return func(c *cli.Context) error {
		cfg, err := loadAppConfig(c)
		if err != nil {
			return err
		}

		interceptor, err := signal.Intercept()
		if err != nil {
			return err
		}
		defer interceptor.RequestShutdown()

		logWriter, err := setupLoggers(cfg, interceptor)
		if err != nil {
			return err
		}
		defer func() {
			_ = logWriter.Close()
		}()

		if cfg.Prometheus.Enabled() {
			err := monitoring.ExportPrometheusMetrics(cfg.Prometheus)
			if err != nil {
				return err
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case <-interceptor.ShutdownChannel():
				cancel()
			case <-ctx.Done():
			}
		}()

		log.Debugf("Running command %v with network %v (version %v, "+
			"%v build, tags %v)", c.Command.Name, cfg.Network.Name,
			build.Version(), build.Deployment, build.Tags())

		return f(c, &commandEnv{
			cfg: cfg,
			ctx: ctx,
		})
	}
}

// loadAppConfig loads the config file and applies the global flags on top of
// it.
func loadAppConfig(c *cli.Context) (*Config, error) {
	configFile := defaultConfigFile
	required := c.GlobalIsSet("configfile")
	if required {
		configFile = c.GlobalString("configfile")
	}

	cfg, err := LoadConfig(configFile, required)
	if err != nil {
		return nil, err
	}

	if c.GlobalIsSet("network") {
		cfg.Network.Name = c.GlobalString("network")
	}
	if c.GlobalIsSet("debuglevel") {
		cfg.DebugLevel = c.GlobalString("debuglevel")
	}
	if c.GlobalIsSet("walletdir") {
		cfg.WalletDir = c.GlobalString("walletdir")
		cfg.LogDir = filepath.Join(
			cfg.WalletDir, kitcfg.DefaultLogDirname,
		)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readPassword reads a secret from the terminal. This requires there to be an
// actual TTY so passing in a secret from stdin won't work.
func readPassword(text string) ([]byte, error) {
	fmt.Print(text)

	// The variable syscall.Stdin is of a different type in the Windows API
	// that's why we need the explicit cast. And of course the linter
	// doesn't like it either.
	pw, err := term.ReadPassword(int(syscall.Stdin)) // nolint:unconvert
	fmt.Println()

	return pw, err
}

func main() {
	app := cli.NewApp()
	app.Name = "walletkit"
	app.Version = build.Version() + " commit=" + build.Commit
	app.Usage = "encode addresses and use signing keys of a wallet"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:      "configfile",
			Value:     defaultConfigFile,
			Usage:     "The path to walletkit's config file.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name:      "walletdir",
			Value:     defaultWalletDir,
			Usage:     "The path to walletkit's base directory.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: netparams.Mainnet.String(),
			Usage: "The network addresses belong to (mainnet, " +
				"stokenet, localnet, releasenet, rcnet, " +
				"milestonenet, testnet6, sandpitnet).",
		},
		cli.StringFlag{
			Name:  "debuglevel",
			Value: defaultDebugLevel,
			Usage: "Logging level for all subsystems, or " +
				"<global-level>,<subsystem>=<level>,...",
		},
	}
	app.Commands = []cli.Command{
		networksCommand,
		newAddressCommand,
		decodeAddressCommand,
		deriveKeyCommand,
		signMessageCommand,
		verifyMessageCommand,
		encryptCommand,
		decryptCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
