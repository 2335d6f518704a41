package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"invoicer/internal/billing"
	"invoicer/internal/pdf"
	"invoicer/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate CYCLE_ID",
	Short: "Generate a PDF invoice for a cycle",
	Long: `Compile the events assigned to a cycle into a numbered invoice and
render it as a PDF.

The hourly rate comes from the --rate flag, the cycle's stored rate, or
an interactive prompt (which also back-fills the cycle). Generating
again for the same cycle creates a new invoice with a fresh number.`,
	Example: `  # Generate with the cycle's stored rate
  invoicer generate 3

  # Override the rate and list every event as its own line item
  invoicer generate 3 --rate 1800 --detailed

  # Back-date the invoice with 45-day payment terms
  invoicer generate 3 --invoice-date 2026-03-31 --due-days 45`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Float64("rate", 0, "Hourly rate (overrides cycle rate)")
	generateCmd.Flags().Bool("detailed", false, "Generate detailed invoice with individual line items")
	generateCmd.Flags().String("invoice-date", "", "Invoice date (YYYY-MM-DD), defaults to today")
	generateCmd.Flags().Int("due-days", 0, "Payment terms in days (default: 30)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cycleID, err := parseCycleID(args[0])
	if err != nil {
		return err
	}

	rateFlag, _ := cmd.Flags().GetFloat64("rate")
	detailed, _ := cmd.Flags().GetBool("detailed")
	invoiceDateStr, _ := cmd.Flags().GetString("invoice-date")
	dueDays, _ := cmd.Flags().GetInt("due-days")

	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	if dueDays == 0 {
		dueDays = cfg.DefaultDueDays
	}

	cycle, err := st.Cycles.Get(cycleID)
	if err != nil {
		return err
	}

	rate, err := resolveRate(st.Cycles, cycle, rateFlag)
	if err != nil {
		return err
	}

	events, err := st.Events.ListByCycle(cycle.ID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no events assigned to cycle %d; run: invoicer cycle assign %d", cycle.ID, cycle.ID)
	}

	profile, err := st.Profiles.GetOrCreate()
	if err != nil {
		return err
	}
	if !profile.Complete() {
		fmt.Println("Please complete your profile first:")
		if err := editProfile(profile); err != nil {
			return err
		}
		if err := st.Profiles.Update(profile); err != nil {
			return err
		}
	}

	var invoiceDate time.Time
	if invoiceDateStr != "" {
		invoiceDate, err = time.ParseInLocation(models.DateFormat, invoiceDateStr, cfg.Location())
		if err != nil {
			return fmt.Errorf("invalid invoice date %q: expected YYYY-MM-DD", invoiceDateStr)
		}
	}

	compiler := billing.NewCompiler(st.Invoices, pdf.NewRenderer(cfg.InvoicesDir))
	invoice, err := compiler.Compile(cycle, events, profile, billing.CompileOptions{
		Rate:        rate,
		InvoiceDate: invoiceDate,
		TermDays:    dueDays,
		Detailed:    detailed,
	})
	if err != nil {
		return fmt.Errorf("failed to generate invoice: %w", err)
	}

	fmt.Printf("Invoice %s generated: %s\n", invoice.InvoiceNumber, invoice.PDFPath)
	fmt.Printf("  %.2f hours x %.2f = %s %.2f, due %s\n",
		invoice.TotalHours, invoice.HourlyRate,
		cycle.Currency, invoice.TotalAmount, invoice.DueDateString())
	return nil
}

// resolveRate picks the rate from the flag, the cycle, or a prompt.
// A prompted rate is back-filled onto the cycle for next time.
func resolveRate(st storeWithCycles, cycle *models.InvoiceCycle, flagRate float64) (float64, error) {
	if flagRate > 0 {
		return flagRate, nil
	}
	if cycle.HourlyRate != nil && *cycle.HourlyRate > 0 {
		return *cycle.HourlyRate, nil
	}

	var rateStr string
	input := huh.NewInput().
		Title("Hourly rate").
		Description("No rate set for this cycle").
		Validate(func(s string) error {
			rate, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil || rate <= 0 {
				return fmt.Errorf("enter a positive number")
			}
			return nil
		}).
		Value(&rateStr)
	if err := input.Run(); err != nil {
		return 0, err
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(rateStr), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q: %w", rateStr, err)
	}

	if err := st.UpdateRate(cycle.ID, rate); err != nil {
		return 0, err
	}
	cycle.HourlyRate = &rate
	return rate, nil
}

// storeWithCycles narrows the cycle store surface resolveRate needs.
type storeWithCycles interface {
	UpdateRate(id uint, rate float64) error
}
