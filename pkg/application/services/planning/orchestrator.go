// Package planning implements the MRP orchestrator: it drives a full
// planning run level by level, composing BOM explosion, time-phased
// netting, lot sizing, and lead-time offsetting, and feeding each
// planned order's component demand into the next level as derived gross
// requirement.
package planning

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/application/dto"
	"mrpkit/pkg/application/services/explosion"
	"mrpkit/pkg/application/services/lotsizing"
	"mrpkit/pkg/application/services/netting"
	"mrpkit/pkg/application/services/offset"
	"mrpkit/pkg/domain/entities"
	"mrpkit/pkg/domain/repositories"
	"mrpkit/pkg/infrastructure/events"
	"mrpkit/pkg/infrastructure/metrics"
)

// Config holds orchestrator tuning knobs
type Config struct {
	// Parallelism caps concurrent per-item calculations within a level.
	// Zero or negative means one worker per CPU.
	Parallelism int
}

// Orchestrator executes MRP plans. Repositories must be safe for
// concurrent reads; the orchestrator never writes through them.
type Orchestrator struct {
	itemRepo    repositories.ItemRepository
	bomRepo     repositories.BOMRepository
	receiptRepo repositories.ScheduledReceiptRepository
	explosion   *explosion.Engine
	config      Config

	eventStore events.EventStore
	collector  *metrics.Collector
}

// NewOrchestrator creates an orchestrator with default configuration
func NewOrchestrator(
	itemRepo repositories.ItemRepository,
	bomRepo repositories.BOMRepository,
	receiptRepo repositories.ScheduledReceiptRepository,
) *Orchestrator {
	return NewOrchestratorWithConfig(itemRepo, bomRepo, receiptRepo, Config{})
}

// NewOrchestratorWithConfig creates an orchestrator with custom configuration
func NewOrchestratorWithConfig(
	itemRepo repositories.ItemRepository,
	bomRepo repositories.BOMRepository,
	receiptRepo repositories.ScheduledReceiptRepository,
	config Config,
) *Orchestrator {
	return &Orchestrator{
		itemRepo:    itemRepo,
		bomRepo:     bomRepo,
		receiptRepo: receiptRepo,
		explosion:   explosion.NewEngine(itemRepo, bomRepo),
		config:      config,
	}
}

// SetEventStore attaches a run event stream. Nil detaches it.
func (o *Orchestrator) SetEventStore(store events.EventStore) {
	o.eventStore = store
}

// SetMetrics attaches a metrics collector. Nil detaches it.
func (o *Orchestrator) SetMetrics(collector *metrics.Collector) {
	o.collector = collector
}

// itemPlanResult is one item's contribution to a level, produced by a
// worker and merged after the level barrier.
type itemPlanResult struct {
	id           entities.ItemID
	requirements []entities.Requirement
	orders       []entities.PlannedOrder
	exceptions   []entities.Exception
	derived      []derivedDemand
	err          error
}

// ExecutePlan runs the plan to completion. The plan's state transitions
// are owned here: Begin rejects a second concurrent invocation, input
// validation failures transition to Failed with only an error message
// set, and everything else runs through to Completed with exceptions
// accumulated in the result rather than aborting it.
func (o *Orchestrator) ExecutePlan(ctx context.Context, plan *entities.Plan) (*dto.MRPCalculationResult, error) {
	started := time.Now()

	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}
	if err := plan.Begin(); err != nil {
		return nil, fmt.Errorf("cannot execute plan %s: %w", plan.ID, err)
	}

	planID := plan.ID.String()
	o.publish(events.NewRunStartedEvent(plan))

	if err := o.validatePlan(plan); err != nil {
		return o.failRun(plan, started, err), nil
	}

	acc := newLevelAccumulator(len(plan.Horizon))
	for _, demand := range plan.Demands {
		acc.Add(demand.ItemID, plan.Horizon.IndexOf(demand.NeedDate), demand.Quantity)
	}

	var (
		requirements   []entities.Requirement
		orders         []entities.PlannedOrder
		exceptions     []entities.Exception
		itemsProcessed int
	)

	for level := 0; level <= plan.MaxLevel && !acc.Empty(); level++ {
		// Cancellation is only checked between levels so that each
		// level's barrier-then-merge stays atomic.
		if err := ctx.Err(); err != nil {
			return o.failRun(plan, started, fmt.Errorf("run cancelled before level %d: %w", level, err)), nil
		}

		ids := acc.SortedItemIDs()
		results := make([]*itemPlanResult, len(ids))

		var wg sync.WaitGroup
		sem := make(chan struct{}, o.parallelism())
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id entities.ItemID) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				results[i] = o.planItem(ctx, plan, level, id, acc.Gross(id))
			}(i, id)
		}
		wg.Wait()

		// Barrier reached: merge in sorted item order so the run output
		// is deterministic regardless of goroutine scheduling.
		next := newLevelAccumulator(len(plan.Horizon))
		levelOrders := 0
		for _, res := range results {
			if res.err != nil {
				return o.failRun(plan, started, res.err), nil
			}
			requirements = append(requirements, res.requirements...)
			orders = append(orders, res.orders...)
			exceptions = append(exceptions, res.exceptions...)
			levelOrders += len(res.orders)

			for _, order := range res.orders {
				o.publish(events.NewOrderPlannedEvent(planID, order))
			}
			for _, exc := range res.exceptions {
				o.publish(events.NewExceptionRaisedEvent(planID, exc))
			}
			for _, d := range res.derived {
				idx := plan.Horizon.IndexOf(d.needDate)
				if idx < 0 {
					// Derived demand outside the horizon is clamped to the
					// nearest bucket; infeasibility surfaces through the
					// past-due check instead.
					if d.needDate.Before(plan.Horizon.Start()) {
						idx = 0
					} else {
						idx = len(plan.Horizon) - 1
					}
				}
				next.Add(d.itemID, idx, d.quantity)
			}
		}

		itemsProcessed += len(ids)
		o.publish(events.NewLevelCompletedEvent(planID, level, len(ids), levelOrders))
		acc = next
	}

	if err := plan.Complete(); err != nil {
		return nil, fmt.Errorf("failed to complete plan %s: %w", plan.ID, err)
	}

	result := &dto.MRPCalculationResult{
		PlanID:               planID,
		Success:              true,
		TotalItemsProcessed:  itemsProcessed,
		PlannedOrdersCreated: len(orders),
		ExceptionsGenerated:  len(exceptions),
		ExecutionTime:        time.Since(started),
		Requirements:         requirements,
		PlannedOrders:        orders,
		Exceptions:           exceptions,
	}

	o.publish(events.NewRunCompletedEvent(planID, len(orders), len(exceptions)))
	if o.collector != nil {
		o.collector.ObserveRun(result)
	}
	return result, nil
}

// planItem nets one item across the horizon, sizes orders for positive
// nets, offsets dates, and derives component demand for production
// orders. It runs in parallel with the other items of the same level and
// must not touch shared state.
func (o *Orchestrator) planItem(
	ctx context.Context,
	plan *entities.Plan,
	level int,
	id entities.ItemID,
	gross []decimal.Decimal,
) *itemPlanResult {
	res := &itemPlanResult{id: id}

	item, err := o.itemRepo.GetItem(id)
	if err != nil {
		res.err = fmt.Errorf("failed to get item %s: %w", id, err)
		return res
	}

	receipts := make([]decimal.Decimal, len(plan.Horizon))
	for i, period := range plan.Horizon {
		qty, err := o.receiptRepo.GetScheduledReceipts(id, period)
		if err != nil {
			res.err = fmt.Errorf("failed to get scheduled receipts for %s: %w", id, err)
			return res
		}
		receipts[i] = qty
	}

	res.requirements, err = netting.CalculateAcrossHorizon(item, level, plan.Horizon, gross, receipts)
	if err != nil {
		res.err = fmt.Errorf("failed to net item %s: %w", id, err)
		return res
	}

	// Periods-of-supply pre-summing happens here: the policy engine is a
	// pure single-value function, so the orchestrator aggregates the
	// window and emits one order in its first bucket.
	windowLen := 1
	if item.Policy.Method == entities.PeriodsOfSupply && item.Policy.PeriodsOfSupply > 1 {
		windowLen = item.Policy.PeriodsOfSupply
	}

	for i := 0; i < len(res.requirements); {
		req := res.requirements[i]
		if req.NetRequirement.Sign() <= 0 {
			i++
			continue
		}

		net := req.NetRequirement
		advance := 1
		if windowLen > 1 {
			end := i + windowLen
			if end > len(res.requirements) {
				end = len(res.requirements)
			}
			for j := i + 1; j < end; j++ {
				net = net.Add(res.requirements[j].NetRequirement)
			}
			advance = end - i
		}

		qty, excs := lotsizing.Apply(id, i, item.Policy, net)
		res.exceptions = append(res.exceptions, excs...)

		if qty.Sign() > 0 {
			requiredDate := req.Period.Start
			release := offset.PlannedReleaseDate(requiredDate, item.LeadTimeDays, item.SafetyLeadTimeDays)

			orderType := entities.Production
			if item.Purchased && !item.Manufactured {
				orderType = entities.Purchase
			}

			order, err := entities.NewPlannedOrder(
				id, qty, release, requiredDate, orderType, level, i,
				fmt.Sprintf("net requirement %s level %d period %d", id, level, i),
			)
			if err != nil {
				res.err = fmt.Errorf("failed to create planned order for %s: %w", id, err)
				return res
			}

			if offset.IsPastDue(release, plan.AsOf) {
				res.exceptions = append(res.exceptions, entities.NewPastDueOrderException(order,
					fmt.Sprintf("release date %s is before the plan reference date %s",
						release.Format("2006-01-02"), plan.AsOf.Format("2006-01-02"))))
			}

			res.orders = append(res.orders, *order)

			if orderType == entities.Production {
				derived, excs, err := o.deriveComponentDemand(ctx, plan, order)
				if err != nil {
					res.err = err
					return res
				}
				res.exceptions = append(res.exceptions, excs...)
				res.derived = append(res.derived, derived...)
			}
		}

		i += advance
	}

	return res
}

// deriveComponentDemand explodes one production order a single BOM level
// deep and turns the level-1 nodes into gross requirement contributions
// due at the order's release date. Phantom components are expanded by
// the explosion engine, so their children land here directly.
func (o *Orchestrator) deriveComponentDemand(
	ctx context.Context,
	plan *entities.Plan,
	order *entities.PlannedOrder,
) ([]derivedDemand, []entities.Exception, error) {
	expl, err := o.explosion.ExplodeAsOf(ctx, order.ItemID, order.Quantity, 1, plan.AsOf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to explode BOM for order %s: %w", order.Ref(), err)
	}

	var derived []derivedDemand
	for _, node := range expl.Items {
		if node.Level == 0 {
			continue
		}
		derived = append(derived, derivedDemand{
			itemID:   node.ItemID,
			quantity: node.RequiredQuantity,
			needDate: order.ReleaseDate,
		})
	}
	return derived, expl.Exceptions, nil
}

// validatePlan applies the input validation rules that abort a run
// before any computation starts.
func (o *Orchestrator) validatePlan(plan *entities.Plan) error {
	if len(plan.Demands) == 0 {
		return fmt.Errorf("plan has no demands")
	}
	if _, err := entities.NewHorizon(plan.Horizon); err != nil {
		return fmt.Errorf("invalid planning horizon: %w", err)
	}
	for _, demand := range plan.Demands {
		if string(demand.ItemID) == "" {
			return fmt.Errorf("demand has empty item id")
		}
		if demand.Quantity.Sign() <= 0 {
			return fmt.Errorf("demand for %s has non-positive quantity %s", demand.ItemID, demand.Quantity)
		}
		if plan.Horizon.IndexOf(demand.NeedDate) < 0 {
			return fmt.Errorf("demand for %s has need date %s outside the planning horizon",
				demand.ItemID, demand.NeedDate.Format("2006-01-02"))
		}
	}
	return nil
}

func (o *Orchestrator) failRun(plan *entities.Plan, started time.Time, cause error) *dto.MRPCalculationResult {
	_ = plan.Fail()
	result := dto.NewFailedResult(plan.ID.String(), time.Since(started), cause.Error())
	o.publish(events.NewRunFailedEvent(plan.ID.String(), cause.Error()))
	if o.collector != nil {
		o.collector.ObserveRun(result)
	}
	return result
}

func (o *Orchestrator) publish(event events.Event) {
	if o.eventStore == nil {
		return
	}
	_ = o.eventStore.AppendEvent(event.StreamID(), event)
}

func (o *Orchestrator) parallelism() int {
	if o.config.Parallelism > 0 {
		return o.config.Parallelism
	}
	return runtime.NumCPU()
}
