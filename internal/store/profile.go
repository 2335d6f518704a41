package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"invoicer/internal/billing"
	"invoicer/pkg/models"
)

// ProfileStore persists the singleton user profile under a fixed key.
type ProfileStore struct {
	db *gorm.DB
}

// GetOrCreate returns the profile, creating a placeholder row on first use.
func (s *ProfileStore) GetOrCreate() (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.First(&profile, models.UserProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{
			ID:       models.UserProfileID,
			FullName: models.DefaultProfileName,
			Address:  "Your Address",
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("%w: create default profile: %v", billing.ErrStorage, err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get profile: %v", billing.ErrStorage, err)
	}
	return &profile, nil
}

// Update writes the profile in place under the fixed key.
func (s *ProfileStore) Update(profile *models.UserProfile) error {
	profile.ID = models.UserProfileID
	if err := s.db.Save(profile).Error; err != nil {
		return fmt.Errorf("%w: update profile: %v", billing.ErrStorage, err)
	}
	return nil
}
