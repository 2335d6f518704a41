// Package pdf renders invoice artifacts with gofpdf.
package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// Renderer writes invoice PDFs into a target directory. It implements
// billing.ArtifactRenderer.
type Renderer struct {
	dir string
	log zerolog.Logger
}

// NewRenderer creates a renderer writing into dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{
		dir: dir,
		log: logger.WithComponent("pdf"),
	}
}

// Render writes the invoice document and returns its path. The invoice
// must already carry its final number, dates and amounts.
func (r *Renderer) Render(invoice *models.Invoice, cycle *models.InvoiceCycle, events []models.CalendarEvent, profile *models.UserProfile, detailed bool) (string, error) {
	filename := fmt.Sprintf("invoice-%s-%s.pdf",
		strings.TrimPrefix(invoice.InvoiceNumber, "#"),
		invoice.InvoiceDateString())
	path := filepath.Join(r.dir, filename)
	currency := cycle.Currency

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 24)
	doc.Cell(40, 12, "INVOICE")
	doc.Ln(16)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(30, 6, "Invoice ID:")
	doc.Cell(60, 6, invoice.InvoiceNumber)
	doc.Ln(6)
	doc.Cell(30, 6, "Date:")
	doc.Cell(60, 6, invoice.InvoiceDateString())
	doc.Ln(6)
	doc.Cell(30, 6, "Due Date:")
	doc.Cell(60, 6, invoice.DueDateString())
	doc.Ln(12)

	// Payer block
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(40, 8, "From:")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(95, 6, profile.FullName)
	doc.Ln(6)
	multiLine(doc, profile.Address)
	if profile.PAN != "" {
		doc.Cell(95, 6, fmt.Sprintf("PAN: %s", profile.PAN))
		doc.Ln(6)
	}
	doc.Ln(6)

	// Client block
	if cycle.ClientName != "" || cycle.ClientAddress != "" {
		doc.SetFont("Helvetica", "B", 12)
		doc.Cell(40, 8, "Bill To:")
		doc.Ln(8)
		doc.SetFont("Helvetica", "", 10)
		if cycle.ClientName != "" {
			doc.Cell(95, 6, cycle.ClientName)
			doc.Ln(6)
		}
		multiLine(doc, cycle.ClientAddress)
		if cycle.ClientTaxID != "" {
			doc.Cell(95, 6, fmt.Sprintf("Tax ID: %s", cycle.ClientTaxID))
			doc.Ln(6)
		}
		doc.Ln(6)
	}

	// Line items
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(240, 240, 240)
	doc.CellFormat(110, 8, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 8, "Hours", "1", 0, "R", true, 0, "")
	doc.CellFormat(25, 8, "Rate", "1", 0, "R", true, 0, "")
	doc.CellFormat(30, 8, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 9)
	if detailed {
		for _, event := range events {
			title := event.Title
			if len(title) > 55 {
				title = title[:52] + "..."
			}
			description := fmt.Sprintf("%s  %s", event.StartTime.Format("2006-01-02"), title)
			amount := event.DurationHours * invoice.HourlyRate
			doc.CellFormat(110, 7, description, "1", 0, "L", false, 0, "")
			doc.CellFormat(25, 7, fmt.Sprintf("%.2f", event.DurationHours), "1", 0, "R", false, 0, "")
			doc.CellFormat(25, 7, fmt.Sprintf("%.2f", invoice.HourlyRate), "1", 0, "R", false, 0, "")
			doc.CellFormat(30, 7, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
		}
	} else {
		description := fmt.Sprintf("Professional services (%s)", cycle.Period())
		doc.CellFormat(110, 7, description, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%.2f", invoice.TotalHours), "1", 0, "R", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%.2f", invoice.HourlyRate), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, fmt.Sprintf("%.2f", invoice.TotalAmount), "1", 1, "R", false, 0, "")
	}

	// Totals
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(160, 8, "Total:", "", 0, "R", false, 0, "")
	doc.CellFormat(30, 8, fmt.Sprintf("%s %.2f", currency, invoice.TotalAmount), "", 1, "R", false, 0, "")
	doc.Ln(8)

	// Payment details
	if profile.AccountNumber != "" {
		doc.SetFont("Helvetica", "B", 12)
		doc.Cell(40, 8, "Payment Details:")
		doc.Ln(8)
		doc.SetFont("Helvetica", "", 10)
		rows := [][2]string{
			{"Account Name", profile.AccountName},
			{"Account Number", profile.AccountNumber},
			{"IFSC Code", profile.IFSCCode},
			{"Bank", profile.BankName},
			{"Account Type", profile.AccountType},
		}
		for _, row := range rows {
			if row[1] == "" {
				continue
			}
			doc.Cell(40, 6, row[0]+":")
			doc.Cell(100, 6, row[1])
			doc.Ln(6)
		}
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write PDF %s: %w", path, err)
	}

	r.log.Info().
		Str("path", path).
		Str("invoice_number", invoice.InvoiceNumber).
		Bool("detailed", detailed).
		Msg("Rendered invoice PDF")

	return path, nil
}

// multiLine writes a block of text, honoring both real newlines and
// literal "\n" sequences entered at the prompt.
func multiLine(doc *gofpdf.Fpdf, text string) {
	if text == "" {
		return
	}
	normalized := strings.ReplaceAll(text, `\n`, "\n")
	for _, line := range strings.Split(normalized, "\n") {
		doc.Cell(95, 6, line)
		doc.Ln(6)
	}
}
