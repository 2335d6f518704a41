package store

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gorm.io/gorm"

	"invoicer/internal/billing"
	"invoicer/pkg/models"
)

// InvoiceStore persists compiled invoices. It implements
// billing.InvoiceLedger.
type InvoiceStore struct {
	db *gorm.DB
}

// Transaction runs fn against a transaction-bound ledger.
func (s *InvoiceStore) Transaction(fn func(tx billing.InvoiceLedger) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&InvoiceStore{db: tx})
	})
}

var invoiceNumberPattern = regexp.MustCompile(`^#(\d+)$`)

// NextNumber returns the next invoice number, formatted as "#" plus a
// zero-padded 3-digit sequence. It scans existing numbers for the
// maximum suffix, so gaps left by deletions are never refilled.
//
// The scan and the subsequent insert are only atomic when run inside
// one transaction with a single active process.
func (s *InvoiceStore) NextNumber() (string, error) {
	var numbers []string
	err := s.db.Model(&models.Invoice{}).
		Where("invoice_number LIKE '#%'").
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return "", fmt.Errorf("%w: scan invoice numbers: %v", billing.ErrStorage, err)
	}
	return nextInvoiceNumber(numbers), nil
}

func nextInvoiceNumber(existing []string) string {
	max := 0
	for _, number := range existing {
		m := invoiceNumberPattern.FindStringSubmatch(number)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("#%03d", max+1)
}

// Create inserts a compiled invoice record.
func (s *InvoiceStore) Create(invoice *models.Invoice) error {
	if err := s.db.Create(invoice).Error; err != nil {
		return fmt.Errorf("%w: create invoice %s: %v", billing.ErrStorage, invoice.InvoiceNumber, err)
	}
	return nil
}

// List returns all invoices with their cycle preloaded, newest first.
func (s *InvoiceStore) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.
		Preload("Cycle").
		Order("generated_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list invoices: %v", billing.ErrStorage, err)
	}
	return invoices, nil
}

// GetByNumber returns the invoice with the given invoice number.
func (s *InvoiceStore) GetByNumber(number string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.
		Preload("Cycle").
		Where("invoice_number = ?", number).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invoice %s", billing.ErrNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get invoice %s: %v", billing.ErrStorage, number, err)
	}
	return &invoice, nil
}

// Delete removes the invoice record and its PDF artifact. A missing
// artifact file is not an error; a missing record is.
func (s *InvoiceStore) Delete(number string) error {
	invoice, err := s.GetByNumber(number)
	if err != nil {
		return err
	}

	if invoice.PDFPath != "" {
		if err := os.Remove(invoice.PDFPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: remove artifact %s: %v", billing.ErrStorage, invoice.PDFPath, err)
		}
	}

	res := s.db.Where("invoice_number = ?", number).Delete(&models.Invoice{})
	if res.Error != nil {
		return fmt.Errorf("%w: delete invoice %s: %v", billing.ErrStorage, number, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: invoice %s", billing.ErrNotFound, number)
	}
	return nil
}
