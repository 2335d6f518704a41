package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCycleValidate(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		cycle   InvoiceCycle
		wantErr bool
	}{
		{"valid", InvoiceCycle{Name: "March", StartDate: start, EndDate: end}, false},
		{"single day", InvoiceCycle{Name: "Day", StartDate: start, EndDate: start}, false},
		{"missing name", InvoiceCycle{StartDate: start, EndDate: end}, true},
		{"end before start", InvoiceCycle{Name: "Backwards", StartDate: end, EndDate: start}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cycle.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCyclePeriod(t *testing.T) {
	cycle := InvoiceCycle{
		Name:      "March",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2026-03-01 to 2026-03-31", cycle.Period())
}

func TestProfileComplete(t *testing.T) {
	assert.False(t, (&UserProfile{}).Complete())
	assert.False(t, (&UserProfile{FullName: DefaultProfileName}).Complete())
	assert.True(t, (&UserProfile{FullName: "Jane Freelancer"}).Complete())
}
