// Package observability provides metrics and tracing.
package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts failed Redis commands by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis command errors.",
	},
	[]string{"command"},
)

// LedgerConflicts counts duplicate-like (and repost/save) attempts rejected
// by the uniqueness constraint.
var LedgerConflicts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ripple_ledger_conflicts_total",
		Help: "Total number of ledger mutations rejected as duplicates.",
	},
	[]string{"kind"},
)

var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for HTTP request metrics.
// The middleware registers collectors with the default registry, so repeated
// calls (servers rebuilt in tests) return the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New(serviceName)
	})
	return promMiddleware
}
