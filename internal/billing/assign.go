// Package billing implements the invoicing core: selecting and binding
// calendar events to invoice cycles, and compiling priced invoices from
// the bound events.
package billing

import (
	"github.com/rs/zerolog"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// EventSource is the event persistence contract the assignment engine
// depends on.
type EventSource interface {
	// ListUnassigned returns unassigned events whose start date is
	// on/after startDate and whose end date is on/before endDate
	// (YYYY-MM-DD, date-only comparison), ordered by start time.
	ListUnassigned(startDate, endDate string) ([]models.CalendarEvent, error)

	// Assign binds the events with the given row ids to a cycle.
	Assign(eventIDs []uint, cycleID uint) error
}

// Assigner binds unassigned, in-range calendar events to a cycle.
type Assigner struct {
	events EventSource
	log    zerolog.Logger
}

// NewAssigner creates an assignment engine over the given event source.
func NewAssigner(events EventSource) *Assigner {
	return &Assigner{
		events: events,
		log:    logger.WithComponent("assigner"),
	}
}

// Candidates returns the unassigned events falling inside the cycle's
// date range, ordered by start time. Selection indices refer to
// positions in this slice.
func (a *Assigner) Candidates(cycle *models.InvoiceCycle) ([]models.CalendarEvent, error) {
	const op = "Candidates"

	events, err := a.events.ListUnassigned(cycle.StartDateString(), cycle.EndDateString())
	if err != nil {
		return nil, WrapBillingError(op, err, "listing unassigned events")
	}
	return events, nil
}

// Assign parses the selection string against the candidate slice and
// binds the chosen events to the cycle. It returns the chosen events.
// A malformed selection surfaces as a *SelectionError without touching
// storage; an empty result binds nothing.
func (a *Assigner) Assign(candidates []models.CalendarEvent, selection string, cycleID uint) ([]models.CalendarEvent, error) {
	const op = "Assign"

	indices, err := ParseSelection(selection, len(candidates))
	if err != nil {
		return nil, err
	}

	chosen := make([]models.CalendarEvent, 0, len(indices))
	ids := make([]uint, 0, len(indices))
	for _, idx := range indices {
		chosen = append(chosen, candidates[idx-1])
		ids = append(ids, candidates[idx-1].ID)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	if err := a.events.Assign(ids, cycleID); err != nil {
		return nil, WrapBillingError(op, err, "binding events to cycle")
	}

	a.log.Info().
		Uint("cycle_id", cycleID).
		Int("events", len(ids)).
		Float64("hours", TotalHours(chosen)).
		Msg("Assigned events to cycle")

	return chosen, nil
}

// TotalHours sums the stored duration of each event. Durations were
// rounded to 2 decimals at ingestion; the sum is not re-rounded.
func TotalHours(events []models.CalendarEvent) float64 {
	var total float64
	for _, e := range events {
		total += e.DurationHours
	}
	return total
}
