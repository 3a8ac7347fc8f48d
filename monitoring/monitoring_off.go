//go:build !monitoring
// +build !monitoring

package monitoring

import (
	"fmt"

	"github.com/lightningnetwork/walletkit/kitcfg"
)

// ExportPrometheusMetrics is required for walletkit to compile so that
// Prometheus metric exporting can be hidden behind a build tag.
func ExportPrometheusMetrics(_ kitcfg.Prometheus) error {
	return fmt.Errorf("walletkit must be built with the monitoring tag " +
		"to enable exporting Prometheus metrics")
}

// IncrementAddrCacheHit counts an address decode served from the cache when
// monitoring is enabled. This method no-ops as monitoring is disabled.
func IncrementAddrCacheHit() {}

// IncrementAddrCacheMiss counts an address decode that missed the cache when
// monitoring is enabled. This method no-ops as monitoring is disabled.
func IncrementAddrCacheMiss() {}

// IncrementDeviceRequest counts a device request when monitoring is enabled.
// This method no-ops as monitoring is disabled.
func IncrementDeviceRequest(_, _ string) {}
