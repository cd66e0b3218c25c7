package entities

import (
	"fmt"
	"time"
)

// Period is a single time bucket used for time-phased netting. A period
// covers [Start, End): the start instant is inside the bucket, the end
// instant belongs to the next one.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod creates a validated Period
func NewPeriod(start, end time.Time) (*Period, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("period end %v must be after start %v", end, start)
	}
	return &Period{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the bucket.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Horizon is the caller-supplied ordered list of periods for a planning
// run. The engine never generates a calendar of its own.
type Horizon []Period

// NewHorizon validates that the periods are non-empty, ordered, and
// non-overlapping.
func NewHorizon(periods []Period) (Horizon, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("horizon must contain at least one period")
	}
	for i, p := range periods {
		if !p.End.After(p.Start) {
			return nil, fmt.Errorf("period %d: end %v must be after start %v", i, p.End, p.Start)
		}
		if i > 0 && periods[i-1].End.After(p.Start) {
			return nil, fmt.Errorf("period %d overlaps or precedes period %d", i, i-1)
		}
	}
	return Horizon(periods), nil
}

// IndexOf returns the index of the period containing t, or -1 when t falls
// outside the horizon (including gaps between buckets).
func (h Horizon) IndexOf(t time.Time) int {
	for i, p := range h {
		if p.Contains(t) {
			return i
		}
	}
	return -1
}

// Start returns the start of the first period.
func (h Horizon) Start() time.Time {
	return h[0].Start
}

// End returns the end of the last period.
func (h Horizon) End() time.Time {
	return h[len(h)-1].End
}
