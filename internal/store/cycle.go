package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"invoicer/internal/billing"
	"invoicer/pkg/models"
)

// CycleStore persists invoice cycles.
type CycleStore struct {
	db *gorm.DB
}

// Create inserts a new cycle after validating its date bounds.
func (s *CycleStore) Create(cycle *models.InvoiceCycle) error {
	if err := cycle.Validate(); err != nil {
		return fmt.Errorf("%w: %v", billing.ErrValidation, err)
	}
	if err := s.db.Create(cycle).Error; err != nil {
		return fmt.Errorf("%w: create cycle: %v", billing.ErrStorage, err)
	}
	return nil
}

// Get returns the cycle with the given id.
func (s *CycleStore) Get(id uint) (*models.InvoiceCycle, error) {
	var cycle models.InvoiceCycle
	err := s.db.First(&cycle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invoice cycle %d", billing.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get cycle %d: %v", billing.ErrStorage, id, err)
	}
	return &cycle, nil
}

// List returns all cycles, newest first.
func (s *CycleStore) List() ([]models.InvoiceCycle, error) {
	var cycles []models.InvoiceCycle
	if err := s.db.Order("created_at DESC").Find(&cycles).Error; err != nil {
		return nil, fmt.Errorf("%w: list cycles: %v", billing.ErrStorage, err)
	}
	return cycles, nil
}

// UpdateRate back-fills the hourly rate on an existing cycle.
func (s *CycleStore) UpdateRate(id uint, rate float64) error {
	res := s.db.Model(&models.InvoiceCycle{}).
		Where("id = ?", id).
		Update("hourly_rate", rate)
	if res.Error != nil {
		return fmt.Errorf("%w: update cycle rate: %v", billing.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: invoice cycle %d", billing.ErrNotFound, id)
	}
	return nil
}
