package models

import "time"

// CalendarEvent is a stored calendar event, optionally bound to an
// invoice cycle. EventID is the stable key of the external calendar
// entry; re-fetching the same entry overwrites the stored copy.
type CalendarEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventID     string `gorm:"size:255;uniqueIndex;not null" json:"event_id"`
	Title       string `gorm:"size:500;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	// DurationHours is (end - start) in hours, rounded to 2 decimals
	// at ingestion. Invoice totals sum this field without re-rounding.
	DurationHours float64 `gorm:"not null" json:"duration_hours"`

	// CycleID is nil while the event is unassigned.
	CycleID *uint         `gorm:"index" json:"cycle_id,omitempty"`
	Cycle   *InvoiceCycle `gorm:"foreignKey:CycleID" json:"-"`
}

// Assigned reports whether the event is bound to a cycle.
func (e *CalendarEvent) Assigned() bool {
	return e.CycleID != nil
}
