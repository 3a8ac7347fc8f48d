package main

import (
	"path/filepath"

	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/walletkit/address"
	"github.com/lightningnetwork/walletkit/build"
	"github.com/lightningnetwork/walletkit/hwdevice"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/kitcfg"
	"github.com/lightningnetwork/walletkit/monitoring"
	"github.com/lightningnetwork/walletkit/msgencrypt"
	"github.com/lightningnetwork/walletkit/netparams"
	"github.com/lightningnetwork/walletkit/signal"
	"github.com/lightningnetwork/walletkit/signingkey"
)

// Subsystem defines the logging code for the command itself.
const Subsystem = "WKIT"

// log is the logger of the command. It is replaced in setupLoggers.
var log = build.NewSubLogger(Subsystem, nil)

// subLoggers maps every subsystem to the function that sets its logger.
var subLoggers = []struct {
	subsystem string
	useLogger func(btclog.Logger)
}{
	{Subsystem, func(l btclog.Logger) { log = l }},
	{address.Subsystem, address.UseLogger},
	{netparams.Subsystem, netparams.UseLogger},
	{keychain.Subsystem, keychain.UseLogger},
	{signingkey.Subsystem, signingkey.UseLogger},
	{msgencrypt.Subsystem, msgencrypt.UseLogger},
	{hwdevice.Subsystem, hwdevice.UseLogger},
	{monitoring.Subsystem, monitoring.UseLogger},
	{signal.Subsystem, signal.UseLogger},
}

// subsystems returns the names of all subsystems.
func subsystems() []string {
	names := make([]string, 0, len(subLoggers))
	for _, s := range subLoggers {
		names = append(names, s.subsystem)
	}

	return names
}

// setupLoggers creates the log handlers selected by the config, hands a
// logger to every subsystem and applies the debug levels. The returned writer
// must be closed on exit.
func setupLoggers(cfg *Config,
	interceptor signal.Interceptor) (*build.RotatingLogWriter, error) {

	logWriter := build.NewRotatingLogWriter()
	if !cfg.LogConfig.File.Disable {
		logFile := filepath.Join(cfg.LogDir, kitcfg.DefaultLogFilename)
		err := logWriter.InitLogRotator(cfg.LogConfig.File, logFile)
		if err != nil {
			return nil, err
		}
	}

	handlers := build.NewDefaultLogHandlers(cfg.LogConfig, logWriter)
	mgr := build.NewSubLoggerManager(handlers...)

	for _, s := range subLoggers {
		s.useLogger(mgr.GenSubLogger(
			s.subsystem, interceptor.RequestShutdown,
		))
	}

	err := build.ParseAndSetDebugLevels(cfg.DebugLevel, mgr)
	if err != nil {
		_ = logWriter.Close()
		return nil, err
	}

	return logWriter, nil
}
