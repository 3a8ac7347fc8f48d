package build

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
	"github.com/klauspost/compress/zstd"
)

// RotatingLogWriter writes log lines into a size limited log file. Rolled
// files are compressed.
type RotatingLogWriter struct {
	pipe    *io.PipeWriter
	rotator *rotator.Rotator

	// done is closed when the rotator goroutine exits.
	done chan struct{}
}

// NewRotatingLogWriter creates a writer that discards everything until
// InitLogRotator is called.
func NewRotatingLogWriter() *RotatingLogWriter {
	return &RotatingLogWriter{}
}

// newCompressor returns the rotator compressor for the named algorithm and
// the file suffix of its rolled files.
func newCompressor(name string) (rotator.Compressor, string, error) {
	suffix, ok := logCompressors[name]
	if !ok {
		return nil, "", fmt.Errorf("unknown log compressor: %v", name)
	}

	switch name {
	case Zstd:
		c, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create zstd "+
				"compressor: %w", err)
		}

		return c, suffix, nil

	default:
		return gzip.NewWriter(nil), suffix, nil
	}
}

// InitLogRotator starts writing to logFile, rolling it over once it exceeds
// the configured size. The log directory is created if needed. Close must be
// called on exit so buffered lines reach the file.
func (r *RotatingLogWriter) InitLogRotator(cfg *FileLoggerConfig,
	logFile string) error {

	if err := os.MkdirAll(filepath.Dir(logFile), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	compressor, suffix, err := newCompressor(cfg.Compressor)
	if err != nil {
		return err
	}

	// The rotator threshold is in KB, the config value in MB.
	r.rotator, err = rotator.New(
		logFile, int64(cfg.MaxLogFileSize*1024), false, cfg.MaxLogFiles,
	)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	r.rotator.SetCompressor(compressor, suffix)

	pr, pw := io.Pipe()
	r.pipe = pw
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)

		// A failing rotator can't be logged through itself. EOF is
		// the pipe being closed.
		err := r.rotator.Run(pr)
		if err != nil && !errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintf(os.Stderr, "failed to run file "+
				"rotator: %v\n", err)
		}
	}()

	return nil
}

// Write writes the byte slice to the log rotator, if present.
func (r *RotatingLogWriter) Write(b []byte) (int, error) {
	if r.pipe == nil {
		return len(b), nil
	}

	return r.pipe.Write(b)
}

// Close flushes the pending log lines and closes the log file.
func (r *RotatingLogWriter) Close() error {
	if r.pipe == nil {
		return nil
	}

	_ = r.pipe.Close()
	<-r.done

	return r.rotator.Close()
}
