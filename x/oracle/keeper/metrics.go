package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OracleMetrics holds all Prometheus metrics for the oracle module
type OracleMetrics struct {
	PriceQueries       *prometheus.CounterVec
	PriceSourceUpdates *prometheus.CounterVec
}

var (
	oracleMetricsOnce sync.Once
	oracleMetrics     *OracleMetrics
)

// NewOracleMetrics creates and registers oracle metrics (singleton pattern)
func NewOracleMetrics() *OracleMetrics {
	oracleMetricsOnce.Do(func() {
		oracleMetrics = &OracleMetrics{
			PriceQueries: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "oracle",
					Name:      "price_queries_total",
					Help:      "Total number of price resolutions by source kind and status",
				},
				[]string{"kind", "status"},
			),
			PriceSourceUpdates: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "mars",
					Subsystem: "oracle",
					Name:      "price_source_updates_total",
					Help:      "Total number of price source registrations and removals",
				},
				[]string{"action", "kind"},
			),
		}
	})
	return oracleMetrics
}
