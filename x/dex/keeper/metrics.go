package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DEXMetrics holds all Prometheus metrics for the DEX module
type DEXMetrics struct {
	SwapsTotal        *prometheus.CounterVec
	PoolsCreated      prometheus.Counter
	SnapshotsRecorded prometheus.Counter
	SnapshotsPruned   prometheus.Counter
}

var (
	dexMetricsOnce sync.Once
	dexMetrics     *DEXMetrics
)

// NewDEXMetrics creates and registers DEX metrics (singleton pattern)
func NewDEXMetrics() *DEXMetrics {
	dexMetricsOnce.Do(func() {
		dexMetrics = &DEXMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "dex",
					Name:      "swaps_total",
					Help:      "Total number of swap hops executed",
				},
				[]string{"pool_id", "denom_in", "denom_out"},
			),
			PoolsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "dex",
					Name:      "pools_created_total",
					Help:      "Total number of pools created",
				},
			),
			SnapshotsRecorded: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "dex",
					Name:      "twap_snapshots_recorded_total",
					Help:      "Total number of cumulative price snapshots recorded",
				},
			),
			SnapshotsPruned: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "dex",
					Name:      "twap_snapshots_pruned_total",
					Help:      "Total number of cumulative price snapshots pruned",
				},
			),
		}
	})
	return dexMetrics
}
