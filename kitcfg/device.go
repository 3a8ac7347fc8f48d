package kitcfg

import (
	"fmt"
	"time"
)

const (
	// DefaultDeviceTimeout is the default time a single device request may
	// take before it is abandoned.
	DefaultDeviceTimeout = 30 * time.Second

	// DefaultDeviceHealthInterval is the default interval between device
	// health checks.
	DefaultDeviceHealthInterval = time.Minute

	// DefaultDeviceHealthAttempts is the default number of failed health
	// checks before the device is considered gone.
	DefaultDeviceHealthAttempts = 3
)

// Device holds the configuration options for a signing device that keeps the
// private keys out of this process.
//
//nolint:lll
type Device struct {
	Enable   bool          `long:"enable" description:"Use a signing device instead of a local seed for HD keys."`
	Emulate  bool          `long:"emulate" description:"Run an in-process device emulator backed by the seed in seedfile. Only meant for testing."`
	SeedFile string        `long:"seedfile" description:"The file holding the hex encoded seed of the emulated device."`
	Timeout  time.Duration `long:"timeout" description:"The time a single device request may take before it is abandoned. Valid time units are {s, m, h}."`

	HealthCheckInterval time.Duration `long:"healthcheck.interval" description:"How often to check that the device is reachable. Set to 0 to disable."`
	HealthCheckAttempts int           `long:"healthcheck.attempts" description:"The number of failed health checks before the device is considered gone."`
}

// DefaultDevice returns the default device config.
func DefaultDevice() *Device {
	return &Device{
		Timeout:             DefaultDeviceTimeout,
		HealthCheckInterval: DefaultDeviceHealthInterval,
		HealthCheckAttempts: DefaultDeviceHealthAttempts,
	}
}

// Validate checks the device options.
//
// NOTE: This is part of the Validator interface.
func (d *Device) Validate() error {
	if !d.Enable {
		return nil
	}

	if d.Timeout <= 0 {
		return fmt.Errorf("device.timeout must be positive, got %v",
			d.Timeout)
	}

	if d.HealthCheckInterval < 0 {
		return fmt.Errorf("device.healthcheck.interval must not be "+
			"negative, got %v", d.HealthCheckInterval)
	}

	if d.HealthCheckInterval > 0 && d.HealthCheckAttempts <= 0 {
		return fmt.Errorf("device.healthcheck.attempts must be "+
			"positive, got %d", d.HealthCheckAttempts)
	}

	if !d.Emulate {
		return fmt.Errorf("no device transport available, only " +
			"--device.emulate is supported")
	}

	if d.SeedFile == "" {
		return fmt.Errorf("device.seedfile must be set for the " +
			"emulated device")
	}

	return nil
}
