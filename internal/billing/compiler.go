package billing

import (
	"time"

	"github.com/rs/zerolog"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// InvoiceLedger is the invoice persistence contract the compiler
// depends on. Transaction runs fn against a transaction-bound ledger so
// number allocation and the insert commit or roll back together.
type InvoiceLedger interface {
	// NextNumber returns the next "#NNN" invoice number.
	NextNumber() (string, error)

	// Create inserts a compiled invoice record.
	Create(invoice *models.Invoice) error

	// Transaction runs fn atomically against this ledger.
	Transaction(fn func(tx InvoiceLedger) error) error
}

// ArtifactRenderer produces the invoice document. It is invoked exactly
// once per compilation, after the numeric fields are finalized, and its
// returned path is stored on the invoice verbatim.
type ArtifactRenderer interface {
	Render(invoice *models.Invoice, cycle *models.InvoiceCycle, events []models.CalendarEvent, profile *models.UserProfile, detailed bool) (string, error)
}

// CompileOptions carries the caller-resolved inputs for a compilation.
type CompileOptions struct {
	// Rate is the hourly rate to price the invoice with. Resolving a
	// rate is the caller's responsibility; zero is rejected.
	Rate float64

	// InvoiceDate defaults to the current date when zero.
	InvoiceDate time.Time

	// TermDays is added to the invoice date to produce the due date.
	TermDays int

	// Detailed selects the per-event line-item layout of the artifact.
	Detailed bool
}

// Compiler aggregates a cycle's bound events into a priced, numbered,
// persisted invoice with a rendered artifact.
type Compiler struct {
	ledger   InvoiceLedger
	renderer ArtifactRenderer
	log      zerolog.Logger
}

// NewCompiler creates an invoice compiler.
func NewCompiler(ledger InvoiceLedger, renderer ArtifactRenderer) *Compiler {
	return &Compiler{
		ledger:   ledger,
		renderer: renderer,
		log:      logger.WithComponent("compiler"),
	}
}

// Compile builds and persists an invoice for the cycle from exactly the
// events currently bound to it. An empty event set is a validation
// error and allocates no invoice number. Number allocation, artifact
// rendering and persistence happen inside one transaction; concurrent
// compilations are out of scope (single active process assumed).
func (c *Compiler) Compile(cycle *models.InvoiceCycle, events []models.CalendarEvent, profile *models.UserProfile, opts CompileOptions) (*models.Invoice, error) {
	const op = "Compile"

	if len(events) == 0 {
		return nil, WrapBillingError(op, ErrEmptyEventSet, cycle.Name)
	}
	if opts.Rate <= 0 {
		return nil, WrapBillingError(op, ErrMissingRate, cycle.Name)
	}

	invoiceDate := opts.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	totalHours := TotalHours(events)
	invoice := &models.Invoice{
		CycleID:     cycle.ID,
		InvoiceDate: invoiceDate,
		DueDate:     invoiceDate.AddDate(0, 0, opts.TermDays),
		TotalHours:  totalHours,
		HourlyRate:  opts.Rate,
		TotalAmount: totalHours * opts.Rate,
	}

	err := c.ledger.Transaction(func(tx InvoiceLedger) error {
		number, err := tx.NextNumber()
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number

		path, err := c.renderer.Render(invoice, cycle, events, profile, opts.Detailed)
		if err != nil {
			return WrapBillingError(op, err, "rendering invoice artifact")
		}
		invoice.PDFPath = path

		return tx.Create(invoice)
	})
	if err != nil {
		return nil, WrapBillingError(op, err, "")
	}

	c.log.Info().
		Str("invoice_number", invoice.InvoiceNumber).
		Uint("cycle_id", cycle.ID).
		Float64("total_hours", invoice.TotalHours).
		Float64("total_amount", invoice.TotalAmount).
		Str("pdf", invoice.PDFPath).
		Msg("Invoice compiled")

	return invoice, nil
}
