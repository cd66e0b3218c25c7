// Package offset implements lead-time offsetting: converting a
// required-by date into a planned release date by calendar-day
// subtraction. There is no working-calendar adjustment.
package offset

import "time"

// PlannedReleaseDate returns requiredDate minus the item's lead time and
// safety lead time, in calendar days. Zero and negative lead times are
// legal: a negative total moves the release date after the required
// date, which the orchestrator reports as infeasible rather than
// adjusting.
func PlannedReleaseDate(requiredDate time.Time, leadTimeDays, safetyLeadTimeDays int) time.Time {
	return requiredDate.AddDate(0, 0, -(leadTimeDays + safetyLeadTimeDays))
}

// IsPastDue reports whether a planned release date falls before the
// planning run's reference date.
func IsPastDue(plannedDate, asOf time.Time) bool {
	return plannedDate.Before(asOf)
}
