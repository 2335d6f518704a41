// Package store persists invoice cycles, calendar events, invoices and
// the user profile in an embedded SQLite database via GORM.
//
// The tool is single-user and single-process; stores assume one writer
// and do not take cross-process locks.
package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"invoicer/pkg/models"
)

// Store bundles the per-entity stores sharing one database handle.
type Store struct {
	db *gorm.DB

	Cycles   *CycleStore
	Events   *EventStore
	Invoices *InvoiceStore
	Profiles *ProfileStore
}

// Open connects to the SQLite database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(
		&models.InvoiceCycle{},
		&models.CalendarEvent{},
		&models.Invoice{},
		&models.UserProfile{},
	); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return newStore(db), nil
}

func newStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Cycles:   &CycleStore{db: db},
		Events:   &EventStore{db: db},
		Invoices: &InvoiceStore{db: db},
		Profiles: &ProfileStore{db: db},
	}
}

// Transaction runs fn against a transaction-bound copy of the store.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(newStore(tx))
	})
}
