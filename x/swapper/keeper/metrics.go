package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SwapperMetrics holds all Prometheus metrics for the swapper module
type SwapperMetrics struct {
	RouteUpdates prometheus.Counter
	Swaps        *prometheus.CounterVec
	Settlements  prometheus.Counter
}

var (
	swapperMetricsOnce sync.Once
	swapperMetrics     *SwapperMetrics
)

// NewSwapperMetrics creates and registers swapper metrics (singleton pattern)
func NewSwapperMetrics() *SwapperMetrics {
	swapperMetricsOnce.Do(func() {
		swapperMetrics = &SwapperMetrics{
			RouteUpdates: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "swapper",
					Name:      "route_updates_total",
					Help:      "Total number of routes set",
				},
			),
			Swaps: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "swapper",
					Name:      "swaps_total",
					Help:      "Total number of exact-in swaps by outcome",
				},
				[]string{"denom_in", "denom_out", "status"},
			),
			Settlements: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "swapper",
					Name:      "settlements_total",
					Help:      "Total number of non-empty result transfers",
				},
			),
		}
	})
	return swapperMetrics
}
