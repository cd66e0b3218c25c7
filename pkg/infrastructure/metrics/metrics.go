// Package metrics exposes planning run metrics through a
// registry-scoped Prometheus collector. The engine itself has no HTTP
// surface; the surrounding service decides whether and where to serve
// the registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mrpkit/pkg/application/dto"
)

// Collector aggregates planning run metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	plannedOrders   prometheus.Counter
	exceptionsTotal *prometheus.CounterVec
	itemsProcessed  prometheus.Counter
}

// NewCollector creates a collector with all planning metrics registered
// on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrp_runs_total",
				Help: "Planning runs by outcome",
			},
			[]string{"outcome"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mrp_run_duration_seconds",
				Help:    "Wall-clock duration of planning runs",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		plannedOrders: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mrp_planned_orders_total",
				Help: "Planned orders emitted across all runs",
			},
		),
		exceptionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrp_exceptions_total",
				Help: "Planning exceptions by kind",
			},
			[]string{"kind"},
		),
		itemsProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mrp_items_processed_total",
				Help: "Item-level netting passes across all runs",
			},
		),
	}

	c.registry.MustRegister(
		c.runsTotal,
		c.runDuration,
		c.plannedOrders,
		c.exceptionsTotal,
		c.itemsProcessed,
	)
	return c
}

// Registry returns the collector's registry for scraping or testing.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRun records one finished planning run.
func (c *Collector) ObserveRun(result *dto.MRPCalculationResult) {
	if result == nil {
		return
	}

	outcome := "completed"
	if !result.Success {
		outcome = "failed"
	}
	c.runsTotal.WithLabelValues(outcome).Inc()
	c.runDuration.Observe(result.ExecutionTime.Seconds())
	c.plannedOrders.Add(float64(result.PlannedOrdersCreated))
	c.itemsProcessed.Add(float64(result.TotalItemsProcessed))
	for _, exc := range result.Exceptions {
		c.exceptionsTotal.WithLabelValues(exc.Kind.String()).Inc()
	}
}
