//go:build monitoring
// +build monitoring

package monitoring

import (
	"errors"
	"net/http"
	"sync"

	"github.com/lightningnetwork/walletkit/kitcfg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	started sync.Once

	addrCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walletkit",
		Subsystem: "addr_cache",
		Name:      "hits_total",
		Help:      "Address decodes served from the decode cache.",
	})

	addrCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walletkit",
		Subsystem: "addr_cache",
		Name:      "misses_total",
		Help:      "Address decodes that had to parse the string.",
	})

	deviceRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletkit",
		Subsystem: "device",
		Name:      "requests_total",
		Help:      "Requests sent to the signing device.",
	}, []string{"op", "result"})
)

func init() {
	prometheus.MustRegister(addrCacheHits, addrCacheMisses, deviceRequests)
}

// ExportPrometheusMetrics launches the Prometheus exporter on the configured
// address.
func ExportPrometheusMetrics(cfg kitcfg.Prometheus) error {
	if !cfg.Enabled() {
		return errors.New("prometheus exporter is not enabled")
	}

	started.Do(func() {
		log.Infof("Prometheus exporter started on %v/metrics",
			cfg.Listen)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			err := http.ListenAndServe(cfg.Listen, mux)
			if err != nil {
				log.Errorf("Prometheus exporter stopped: %v",
					err)
			}
		}()
	})

	return nil
}

// IncrementAddrCacheHit counts an address decode served from the cache.
func IncrementAddrCacheHit() {
	addrCacheHits.Inc()
}

// IncrementAddrCacheMiss counts an address decode that missed the cache.
func IncrementAddrCacheMiss() {
	addrCacheMisses.Inc()
}

// IncrementDeviceRequest counts a device request of the given operation and
// result.
func IncrementDeviceRequest(op, result string) {
	deviceRequests.WithLabelValues(op, result).Inc()
}
