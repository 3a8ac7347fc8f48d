package build

import (
	"io"

	"github.com/btcsuite/btclog/v2"
)

// LogType is the kind of console and file logging selected by the build tags.
type LogType byte

const (
	// LogTypeNone writes no logs at all.
	LogTypeNone LogType = iota

	// LogTypeConsole writes logs to stderr only. Unit tests use it.
	LogTypeConsole

	// LogTypeDefault writes logs to stderr and to the rotated log file.
	LogTypeDefault
)

// String returns a human readable identifier for the logging type.
func (t LogType) String() string {
	switch t {
	case LogTypeNone:
		return "none"
	case LogTypeConsole:
		return "console"
	case LogTypeDefault:
		return "default"
	default:
		return "unknown"
	}
}

// LogWriter is the console side of the log output. Its Write method depends
// on the "stdlog" and "nolog" build tags. Console output always goes to
// stderr, stdout carries the command results.
type LogWriter struct {
	// RotatorPipe is the write end of the pipe into the log rotator. It
	// is only used by the default build.
	RotatorPipe *io.PipeWriter
}

// NewSubLogger returns the logger of a subsystem before the CLI configured
// logging. genSubLogger creates it from the final backend; if it is nil the
// logger is disabled, except in development builds with the stdlog tag,
// where it writes straight to the console.
func NewSubLogger(subsystem string,
	genSubLogger func(string) btclog.Logger) btclog.Logger {

	if genSubLogger != nil && LoggingType != LogTypeNone {
		return genSubLogger(subsystem)
	}

	if Deployment != Development || LoggingType != LogTypeConsole {
		return btclog.Disabled
	}

	handler := btclog.NewDefaultHandler(&LogWriter{})
	logger := btclog.NewSLogger(handler.SubSystem(subsystem))

	// The level comes from the loglevel build tags.
	level, _ := btclog.LevelFromString(LogLevel)
	logger.SetLevel(level)

	return logger
}

// SubLoggers maps subsystem names to their loggers.
type SubLoggers map[string]btclog.Logger

// LeveledSubLogger gives access to a set of subsystem loggers and their
// levels.
type LeveledSubLogger interface {
	// SubLoggers returns all registered subsystem loggers.
	SubLoggers() SubLoggers

	// SupportedSubsystems returns the sorted names of the registered
	// subsystems.
	SupportedSubsystems() []string

	// SetLogLevel sets the level of a single subsystem.
	SetLogLevel(subsystemID string, logLevel string)

	// SetLogLevels sets the level of every subsystem.
	SetLogLevels(logLevel string)
}
