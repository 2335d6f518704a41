package models

import "time"

// Invoice is an immutable compiled record of hours and amount for a
// cycle. InvoiceNumber is "#" plus a zero-padded 3-digit sequence;
// numbers grow monotonically and are never reused after deletion.
type Invoice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GeneratedAt time.Time `gorm:"autoCreateTime" json:"generated_at"`

	CycleID uint          `gorm:"index;not null" json:"cycle_id"`
	Cycle   *InvoiceCycle `gorm:"foreignKey:CycleID" json:"cycle,omitempty"`

	InvoiceNumber string    `gorm:"size:16;uniqueIndex;not null" json:"invoice_number"`
	InvoiceDate   time.Time `gorm:"not null" json:"invoice_date"`
	DueDate       time.Time `gorm:"not null" json:"due_date"`

	TotalHours  float64 `gorm:"not null" json:"total_hours"`
	HourlyRate  float64 `gorm:"not null" json:"hourly_rate"`
	TotalAmount float64 `gorm:"not null" json:"total_amount"`

	// PDFPath is the artifact location returned by the renderer,
	// stored verbatim.
	PDFPath string `gorm:"size:1024" json:"pdf_path,omitempty"`
}

// InvoiceDateString returns the invoice date as YYYY-MM-DD.
func (i *Invoice) InvoiceDateString() string {
	return i.InvoiceDate.Format(DateFormat)
}

// DueDateString returns the due date as YYYY-MM-DD.
func (i *Invoice) DueDateString() string {
	return i.DueDate.Format(DateFormat)
}
