//go:build !stdlog && !nolog

package build

import "os"

// LoggingType writes logs to the console and the log rotator, if present.
const LoggingType = LogTypeDefault

// Write writes the byte slice to stderr and to the log rotator, if present.
func (w *LogWriter) Write(b []byte) (int, error) {
	_, _ = os.Stderr.Write(b)
	if w.RotatorPipe != nil {
		_, _ = w.RotatorPipe.Write(b)
	}

	return len(b), nil
}
