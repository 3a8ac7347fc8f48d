//go:build !trace && !debug

package build

// LogLevel is the level of the console logger used by unit tests.
var LogLevel = "info"
