package models

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for calendar dates throughout the tool.
const DateFormat = "2006-01-02"

// InvoiceCycle is a named billing period with client metadata and a rate.
// Events are bound to a cycle before an invoice is compiled for it.
type InvoiceCycle struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name      string    `gorm:"size:255;not null" json:"name"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	// HourlyRate may be back-filled after creation; nil means not set yet.
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Currency   string   `gorm:"size:8" json:"currency"`

	ClientName    string `gorm:"size:255" json:"client_name,omitempty"`
	ClientAddress string `gorm:"type:text" json:"client_address,omitempty"`
	ClientTaxID   string `gorm:"size:64" json:"client_tax_id,omitempty"`
}

// StartDateString returns the cycle start as YYYY-MM-DD.
func (c *InvoiceCycle) StartDateString() string {
	return c.StartDate.Format(DateFormat)
}

// EndDateString returns the cycle end as YYYY-MM-DD.
func (c *InvoiceCycle) EndDateString() string {
	return c.EndDate.Format(DateFormat)
}

// Period returns the human-readable billing period.
func (c *InvoiceCycle) Period() string {
	return fmt.Sprintf("%s to %s", c.StartDateString(), c.EndDateString())
}

// Validate checks the cycle date invariant.
func (c *InvoiceCycle) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("cycle name is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("cycle start date %s is after end date %s",
			c.StartDateString(), c.EndDateString())
	}
	return nil
}
