package entities

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PlanStatus tracks the lifecycle of a planning run
type PlanStatus int

const (
	PlanDraft PlanStatus = iota
	PlanRunning
	PlanCompleted
	PlanFailed
)

// String method for PlanStatus enum
func (s PlanStatus) String() string {
	switch s {
	case PlanDraft:
		return "Draft"
	case PlanRunning:
		return "Running"
	case PlanCompleted:
		return "Completed"
	case PlanFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

var (
	// ErrPlanAlreadyRunning is returned when a second concurrent run is
	// attempted on the same plan. Callers needing simultaneous runs use
	// distinct plan instances.
	ErrPlanAlreadyRunning = errors.New("plan is already running")

	// ErrPlanConsumed is returned when a plan that already completed or
	// failed is executed again.
	ErrPlanConsumed = errors.New("plan has already been executed")
)

// DefaultMaxLevel bounds explosion depth when the caller does not supply
// a limit.
const DefaultMaxLevel = 10

// Plan is a caller-constructed planning run: the top-level demands to
// explode, the horizon to net against, and the depth bound. State
// transitions are owned exclusively by the orchestrator; the plan only
// enforces their legality.
type Plan struct {
	ID       uuid.UUID
	Name     string
	Demands  []Demand
	Horizon  Horizon
	MaxLevel int
	AsOf     time.Time

	mu     sync.Mutex
	status PlanStatus
}

// NewPlan creates a Draft plan. Demands and horizon are validated by the
// orchestrator at execution time so that bad input surfaces as a Failed
// run rather than a construction error. A non-positive maxLevel falls
// back to DefaultMaxLevel; a zero asOf falls back to the current time.
func NewPlan(name string, demands []Demand, horizon Horizon, maxLevel int, asOf time.Time) *Plan {
	if maxLevel <= 0 {
		maxLevel = DefaultMaxLevel
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return &Plan{
		ID:       uuid.New(),
		Name:     name,
		Demands:  demands,
		Horizon:  horizon,
		MaxLevel: maxLevel,
		AsOf:     asOf,
		status:   PlanDraft,
	}
}

// Status returns the current lifecycle state.
func (p *Plan) Status() PlanStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Begin transitions Draft -> Running. It is the single-flight gate: a
// concurrent second call observes Running and is rejected.
func (p *Plan) Begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.status {
	case PlanDraft:
		p.status = PlanRunning
		return nil
	case PlanRunning:
		return ErrPlanAlreadyRunning
	default:
		return ErrPlanConsumed
	}
}

// Complete transitions Running -> Completed.
func (p *Plan) Complete() error {
	return p.finish(PlanCompleted)
}

// Fail transitions Running -> Failed.
func (p *Plan) Fail() error {
	return p.finish(PlanFailed)
}

func (p *Plan) finish(terminal PlanStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != PlanRunning {
		return errors.New("plan is not running")
	}
	p.status = terminal
	return nil
}
