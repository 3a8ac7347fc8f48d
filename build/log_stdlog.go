//go:build stdlog

package build

import "os"

// LoggingType writes logs to the console only.
const LoggingType = LogTypeConsole

// Write writes the byte slice to stderr.
func (w *LogWriter) Write(b []byte) (int, error) {
	return os.Stderr.Write(b)
}
