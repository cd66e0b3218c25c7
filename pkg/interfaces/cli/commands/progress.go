package commands

import (
	"fmt"

	"mrpkit/pkg/infrastructure/events"
)

// progressPrinter echoes run lifecycle events to stdout in verbose mode.
type progressPrinter struct {
	types map[string]bool
}

func newProgressPrinter() *progressPrinter {
	p := &progressPrinter{types: make(map[string]bool)}
	for _, t := range progressEventTypes() {
		p.types[t] = true
	}
	return p
}

func progressEventTypes() []string {
	return []string{
		events.RunStartedEvent,
		events.LevelCompletedEvent,
		events.RunCompletedEvent,
		events.RunFailedEvent,
	}
}

func (p *progressPrinter) CanHandle(eventType string) bool {
	return p.types[eventType]
}

func (p *progressPrinter) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.RunStarted:
		fmt.Printf("[run] started plan %q: %d demands over %d periods, max level %d\n",
			data.PlanName, data.Demands, data.Periods, data.MaxLevel)
	case events.LevelCompleted:
		fmt.Printf("[run] level %d complete: %d items, %d planned orders\n",
			data.Level, data.Items, data.PlannedOrders)
	case events.RunCompleted:
		fmt.Printf("[run] completed: %d planned orders, %d exceptions\n",
			data.PlannedOrders, data.Exceptions)
	case events.RunFailed:
		fmt.Printf("[run] failed: %s\n", data.Reason)
	}
	return nil
}

var _ events.EventHandler = (*progressPrinter)(nil)
