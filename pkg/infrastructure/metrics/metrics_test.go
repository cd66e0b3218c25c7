package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrpkit/pkg/application/dto"
	"mrpkit/pkg/domain/entities"
)

func TestObserveRun_CompletedRun(t *testing.T) {
	c := NewCollector()

	c.ObserveRun(&dto.MRPCalculationResult{
		PlanID:               "plan-1",
		Success:              true,
		TotalItemsProcessed:  6,
		PlannedOrdersCreated: 4,
		ExecutionTime:        250 * time.Millisecond,
		Exceptions: []entities.Exception{
			{Kind: entities.PastDueOrder},
			{Kind: entities.PastDueOrder},
			{Kind: entities.UnresolvedShortage},
		},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("completed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("failed")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.plannedOrders))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.itemsProcessed))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.exceptionsTotal.WithLabelValues("PastDueOrder")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.exceptionsTotal.WithLabelValues("UnresolvedShortage")))
}

func TestObserveRun_FailedRun(t *testing.T) {
	c := NewCollector()

	c.ObserveRun(dto.NewFailedResult("plan-1", 10*time.Millisecond, "plan has no demands"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.plannedOrders))
}

func TestObserveRun_NilResultIgnored(t *testing.T) {
	c := NewCollector()
	c.ObserveRun(nil)

	assert.Equal(t, 0.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("completed")))
}

func TestCollector_RegistryGathers(t *testing.T) {
	c := NewCollector()
	c.ObserveRun(&dto.MRPCalculationResult{Success: true, ExecutionTime: time.Millisecond})

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	for _, want := range []string{
		"mrp_runs_total",
		"mrp_run_duration_seconds",
		"mrp_planned_orders_total",
		"mrp_items_processed_total",
	} {
		assert.True(t, names[want], "missing metric family %s", want)
	}
}

func TestCollector_IndependentRegistries(t *testing.T) {
	// Two collectors must not collide; each registers on its own registry.
	a := NewCollector()
	b := NewCollector()

	a.ObserveRun(&dto.MRPCalculationResult{Success: true, PlannedOrdersCreated: 3})

	assert.Equal(t, 3.0, testutil.ToFloat64(a.plannedOrders))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.plannedOrders))
}
