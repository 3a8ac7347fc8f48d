package hwdevice

import (
	"context"
	"time"

	"github.com/lightningnetwork/lnd/healthcheck"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/kitcfg"
)

// healthCheckBackoff is the time to wait between failed health checks.
const healthCheckBackoff = 5 * time.Second

// NewHealthCheck returns an observation that checks the device answers by
// fetching the key at the root of the first account.
func NewHealthCheck(dev *Device, cfg *kitcfg.Device) *healthcheck.Observation {
	root := keychain.NewHDPath(
		keychain.Hardened(keychain.BIP0044Purpose),
		keychain.Hardened(keychain.CoinType),
		keychain.Hardened(0),
	)

	return healthcheck.NewObservation(
		"signing device",
		func() error {
			ctx, cancel := context.WithTimeout(
				context.Background(), cfg.Timeout,
			)
			defer cancel()

			_, err := dev.PubKey(ctx, root)
			if err != nil {
				log.Warnf("Signing device health check "+
					"failed: %v", err)
			}

			return err
		},
		cfg.HealthCheckInterval, cfg.Timeout, healthCheckBackoff,
		cfg.HealthCheckAttempts,
	)
}
