package store

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invoicer/internal/billing"
	"invoicer/pkg/models"
)

// EventStore persists calendar events.
type EventStore struct {
	db *gorm.DB
}

// Upsert inserts events, replacing any stored copy with the same
// external event id. The replacement writes every column, so an event
// that was already assigned to a cycle loses its assignment when it is
// fetched again.
func (s *EventStore) Upsert(events []models.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		UpdateAll: true,
	}).Create(&events).Error
	if err != nil {
		return fmt.Errorf("%w: upsert %d events: %v", billing.ErrStorage, len(events), err)
	}
	return nil
}

// ListUnassigned returns events with no owning cycle whose start date
// falls on/after startDate and whose end date falls on/before endDate
// (both YYYY-MM-DD, compared date-only), ordered by start time.
func (s *EventStore) ListUnassigned(startDate, endDate string) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := s.db.
		Where("cycle_id IS NULL AND date(start_time) >= ? AND date(end_time) <= ?", startDate, endDate).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list unassigned events: %v", billing.ErrStorage, err)
	}
	return events, nil
}

// Assign binds the events with the given row ids to a cycle. Only
// unassigned events are updated; ids outside that set make the call
// fail without partial effect.
func (s *EventStore) Assign(eventIDs []uint, cycleID uint) error {
	if len(eventIDs) == 0 {
		return nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CalendarEvent{}).
			Where("id IN ? AND cycle_id IS NULL", eventIDs).
			Update("cycle_id", cycleID)
		if res.Error != nil {
			return fmt.Errorf("%w: assign events: %v", billing.ErrStorage, res.Error)
		}
		if res.RowsAffected != int64(len(eventIDs)) {
			return fmt.Errorf("%w: %d of %d events not found or already assigned",
				billing.ErrNotFound, int64(len(eventIDs))-res.RowsAffected, len(eventIDs))
		}
		return nil
	})
	return err
}

// ListByCycle returns the events bound to a cycle, ordered by start time.
func (s *EventStore) ListByCycle(cycleID uint) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := s.db.
		Where("cycle_id = ?", cycleID).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list events for cycle %d: %v", billing.ErrStorage, cycleID, err)
	}
	return events, nil
}
