package build

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
	"github.com/stretchr/testify/require"
)

// newTestManager returns a SubLoggerManager that writes to the returned
// buffer, with the given subsystems already registered.
func newTestManager(subsystems ...string) (*SubLoggerManager,
	*bytes.Buffer) {

	var buf bytes.Buffer
	handler := btclog.NewDefaultHandler(&buf, btclog.WithNoTimestamp())
	mgr := NewSubLoggerManager(handler)
	for _, s := range subsystems {
		mgr.GenSubLogger(s, func() {})
	}

	return mgr, &buf
}

// TestParseAndSetDebugLevels asserts that both the global and the
// per-subsystem forms of the debug level string are applied.
func TestParseAndSetDebugLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		expErr    string
		expLevels map[string]btclogv1.Level
	}{
		{
			name:  "global level",
			level: "debug",
			expLevels: map[string]btclogv1.Level{
				"ADDR": btclog.LevelDebug,
				"HWDV": btclog.LevelDebug,
			},
		},
		{
			name:  "global and subsystem",
			level: "warn,HWDV=trace",
			expLevels: map[string]btclogv1.Level{
				"ADDR": btclog.LevelWarn,
				"HWDV": btclog.LevelTrace,
			},
		},
		{
			name:  "subsystem only",
			level: "ADDR=error",
			expLevels: map[string]btclogv1.Level{
				"ADDR": btclog.LevelError,
				"HWDV": btclog.LevelInfo,
			},
		},
		{
			name:   "invalid global level",
			level:  "loud",
			expErr: "the specified debug level [loud] is invalid",
		},
		{
			name:   "unknown subsystem",
			level:  "NOPE=debug",
			expErr: "the specified subsystem [NOPE] is invalid",
		},
		{
			name:   "malformed pair",
			level:  "info,ADDR",
			expErr: "invalid subsystem/level pair [ADDR]",
		},
		{
			name:   "invalid subsystem level",
			level:  "ADDR=loud",
			expErr: "the specified debug level [loud] is invalid",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			mgr, _ := newTestManager("ADDR", "HWDV")

			err := ParseAndSetDebugLevels(test.level, mgr)
			if test.expErr != "" {
				require.ErrorContains(t, err, test.expErr)
				return
			}
			require.NoError(t, err)

			loggers := mgr.SubLoggers()
			for subsystem, level := range test.expLevels {
				require.Equal(
					t, level, loggers[subsystem].Level(),
					subsystem,
				)
			}
		})
	}
}

// TestSupportedSubsystems checks that the registered subsystems are returned
// in sorted order.
func TestSupportedSubsystems(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager("SGNK", "ADDR", "MENC")
	require.Equal(
		t, []string{"ADDR", "MENC", "SGNK"}, mgr.SupportedSubsystems(),
	)
}

// TestShutdownLoggerCritical makes sure a critical log line triggers the
// shutdown closure and is written through the handler set.
func TestShutdownLoggerCritical(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mgr := NewSubLoggerManager(
		btclog.NewDefaultHandler(&buf, btclog.WithNoTimestamp()),
	)

	var shutdownCalled bool
	logger := mgr.GenSubLogger("HWDV", func() {
		shutdownCalled = true
	})

	logger.Criticalf("device %s unreachable", "emulator")
	require.True(t, shutdownCalled)
	require.Contains(t, buf.String(), "device emulator unreachable")
	require.Contains(t, buf.String(), "HWDV")
}

// TestLogCompressors checks the set of supported log file compressors.
func TestLogCompressors(t *testing.T) {
	t.Parallel()

	require.True(t, SupportedLogCompressor(Gzip))
	require.True(t, SupportedLogCompressor(Zstd))
	require.False(t, SupportedLogCompressor("bzip2"))

	cfg := DefaultLogConfig()
	require.NoError(t, cfg.Validate())

	cfg.File.Compressor = "lz4"
	require.Error(t, cfg.Validate())
}

// TestRotatingLogWriter checks that lines written before Close end up in the
// log file, and that a writer without a rotator discards them.
func TestRotatingLogWriter(t *testing.T) {
	t.Parallel()

	idle := NewRotatingLogWriter()
	n, err := idle.Write([]byte("dropped"))
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.NoError(t, idle.Close())

	for _, compressor := range []string{Gzip, Zstd} {
		t.Run(compressor, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultLogConfig().File
			cfg.Compressor = compressor

			logFile := filepath.Join(
				t.TempDir(), "logs", "walletkit.log",
			)

			w := NewRotatingLogWriter()
			require.NoError(t, w.InitLogRotator(cfg, logFile))

			_, err := w.Write([]byte("first line\n"))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			require.Contains(t, string(content), "first line")
		})
	}

	cfg := DefaultLogConfig().File
	cfg.Compressor = "lz4"
	err = NewRotatingLogWriter().InitLogRotator(
		cfg, filepath.Join(t.TempDir(), "walletkit.log"),
	)
	require.ErrorContains(t, err, "unknown log compressor")
}

// TestStyledConsole checks that the style option colors the level of console
// log lines and leaves unstyled output free of escape sequences.
func TestStyledConsole(t *testing.T) {
	t.Parallel()

	logLine := func(style bool) string {
		cfg := DefaultLogConfig()
		cfg.Console.Style = style
		cfg.Console.NoTimestamps = true

		var buf bytes.Buffer
		handler := btclog.NewDefaultHandler(
			&buf, cfg.Console.HandlerOptions()...,
		)
		logger := btclog.NewSLogger(handler.SubSystem("ADDR"))
		logger.Warnf("cache %s", "full")

		return buf.String()
	}

	plain := logLine(false)
	require.Contains(t, plain, "cache full")
	require.NotContains(t, plain, "\033[")

	styled := logLine(true)
	require.Contains(t, styled, "cache full")
	require.Contains(t, styled, yellow+"[WRN]"+reset)
}
