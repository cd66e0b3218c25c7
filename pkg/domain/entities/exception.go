package entities

import (
	"fmt"
	"strings"
)

// ExceptionKind classifies planning exceptions
type ExceptionKind int

const (
	CyclicBOM ExceptionKind = iota
	PastDueOrder
	UnresolvedShortage
	NegativeInput
)

// String method for ExceptionKind enum
func (k ExceptionKind) String() string {
	switch k {
	case CyclicBOM:
		return "CyclicBOM"
	case PastDueOrder:
		return "PastDueOrder"
	case UnresolvedShortage:
		return "UnresolvedShortage"
	case NegativeInput:
		return "NegativeInput"
	default:
		return "Unknown"
	}
}

// ExceptionSeverity grades how actionable an exception is
type ExceptionSeverity int

const (
	SeverityWarning ExceptionSeverity = iota
	SeverityError
)

// String method for ExceptionSeverity enum
func (s ExceptionSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Exception is an actionable planning anomaly recorded during a run.
// Exceptions are append-only: the run accumulates them and never mutates
// or removes one. PeriodIndex is -1 when the exception is not scoped to a
// period; OrderRef is empty when no planned order is involved.
type Exception struct {
	Kind        ExceptionKind
	Severity    ExceptionSeverity
	ItemID      ItemID
	PeriodIndex int
	OrderRef    string
	Detail      string
}

// NewCyclicBOMException records a product structure cycle found on an
// explosion path.
func NewCyclicBOMException(itemID ItemID, path []ItemID) Exception {
	parts := make([]string, 0, len(path)+1)
	for _, id := range path {
		parts = append(parts, string(id))
	}
	parts = append(parts, string(itemID))
	return Exception{
		Kind:        CyclicBOM,
		Severity:    SeverityError,
		ItemID:      itemID,
		PeriodIndex: -1,
		Detail:      fmt.Sprintf("cyclic BOM: %s", strings.Join(parts, " -> ")),
	}
}

// NewPastDueOrderException records an order whose release date falls
// before the planning run's reference date.
func NewPastDueOrderException(order *PlannedOrder, detail string) Exception {
	return Exception{
		Kind:        PastDueOrder,
		Severity:    SeverityWarning,
		ItemID:      order.ItemID,
		PeriodIndex: order.SourcePeriodIndex,
		OrderRef:    order.Ref(),
		Detail:      detail,
	}
}

// NewUnresolvedShortageException records demand a lot sizing policy could
// not fully cover in one order.
func NewUnresolvedShortageException(itemID ItemID, periodIndex int, detail string) Exception {
	return Exception{
		Kind:        UnresolvedShortage,
		Severity:    SeverityWarning,
		ItemID:      itemID,
		PeriodIndex: periodIndex,
		Detail:      detail,
	}
}

// NewNegativeInputException records an arithmetic edge case local to one
// item and period, such as a non-positive economic order quantity.
func NewNegativeInputException(itemID ItemID, periodIndex int, detail string) Exception {
	return Exception{
		Kind:        NegativeInput,
		Severity:    SeverityWarning,
		ItemID:      itemID,
		PeriodIndex: periodIndex,
		Detail:      detail,
	}
}
