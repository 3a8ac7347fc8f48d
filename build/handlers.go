package build

import (
	"os"

	"github.com/btcsuite/btclog/v2"
)

// NewDefaultLogHandlers returns the handlers selected by cfg and the build
// tags: a console handler writing to stderr and a file handler writing to
// rotator. Disabled handlers are left out, so the result may be empty.
func NewDefaultLogHandlers(cfg *LogConfig,
	rotator *RotatingLogWriter) []btclog.Handler {

	var handlers []btclog.Handler

	if LoggingType == LogTypeNone {
		return handlers
	}

	if !cfg.Console.Disable {
		handlers = append(handlers, btclog.NewDefaultHandler(
			os.Stderr, cfg.Console.HandlerOptions()...,
		))
	}

	if LoggingType == LogTypeDefault && !cfg.File.Disable {
		handlers = append(handlers, btclog.NewDefaultHandler(
			rotator, cfg.File.HandlerOptions()...,
		))
	}

	return handlers
}
