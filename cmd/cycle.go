package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"invoicer/internal/billing"
	"invoicer/pkg/models"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Manage invoice cycles",
}

var cycleCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new invoice cycle",
	Example: `  invoicer cycle create "Acme March" --start 2026-03-01 --end 2026-03-31 \
    --rate 1500 --client-name "Acme Corp" --client-tax-id 29ABCDE1234F1Z5`,
	Args: cobra.ExactArgs(1),
	RunE: runCycleCreate,
}

var cycleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all invoice cycles",
	Args:  cobra.NoArgs,
	RunE:  runCycleList,
}

var cycleAssignCmd = &cobra.Command{
	Use:   "assign CYCLE_ID",
	Short: "Interactively assign events to an invoice cycle",
	Long: `List the unassigned events inside the cycle's date range and bind a
selection of them to the cycle.

The selection is a comma-separated list of event numbers and inclusive
ranges (e.g. "1,3,5-8"), or "all" to include every listed event.`,
	Args: cobra.ExactArgs(1),
	RunE: runCycleAssign,
}

func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.AddCommand(cycleCreateCmd)
	cycleCmd.AddCommand(cycleListCmd)
	cycleCmd.AddCommand(cycleAssignCmd)

	cycleCreateCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cycleCreateCmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cycleCreateCmd.Flags().Float64("rate", 0, "Hourly rate")
	cycleCreateCmd.Flags().String("client-name", "", "Client company name")
	cycleCreateCmd.Flags().String("client-address", "", "Client address")
	cycleCreateCmd.Flags().String("client-tax-id", "", "Client tax id (e.g. GSTIN)")
	cycleCreateCmd.MarkFlagRequired("start")
	cycleCreateCmd.MarkFlagRequired("end")
}

func runCycleCreate(cmd *cobra.Command, args []string) error {
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	rate, _ := cmd.Flags().GetFloat64("rate")
	clientName, _ := cmd.Flags().GetString("client-name")
	clientAddress, _ := cmd.Flags().GetString("client-address")
	clientTaxID, _ := cmd.Flags().GetString("client-tax-id")

	cfg, st, err := openStore()
	if err != nil {
		return err
	}

	start, err := time.ParseInLocation(models.DateFormat, startStr, cfg.Location())
	if err != nil {
		return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startStr)
	}
	end, err := time.ParseInLocation(models.DateFormat, endStr, cfg.Location())
	if err != nil {
		return fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", endStr)
	}

	cycle := &models.InvoiceCycle{
		Name:          args[0],
		StartDate:     start,
		EndDate:       end,
		Currency:      cfg.DefaultCurrency,
		ClientName:    clientName,
		ClientAddress: clientAddress,
		ClientTaxID:   clientTaxID,
	}
	if rate > 0 {
		cycle.HourlyRate = &rate
	}

	if err := st.Cycles.Create(cycle); err != nil {
		return fmt.Errorf("failed to create cycle: %w", err)
	}

	fmt.Printf("Created invoice cycle %q (ID: %d)\n", cycle.Name, cycle.ID)
	return nil
}

func runCycleList(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}

	cycles, err := st.Cycles.List()
	if err != nil {
		return err
	}

	if len(cycles) == 0 {
		fmt.Println("No invoice cycles found.")
		return nil
	}

	fmt.Println("\nInvoice Cycles:")
	fmt.Println(strings.Repeat("-", 92))
	fmt.Printf("%-4s %-30s %-25s %-10s %-20s\n", "ID", "Name", "Period", "Rate", "Client")
	fmt.Println(strings.Repeat("-", 92))
	for _, cycle := range cycles {
		rate := "Not set"
		if cycle.HourlyRate != nil {
			rate = fmt.Sprintf("%.0f/h", *cycle.HourlyRate)
		}
		client := cycle.ClientName
		if client == "" {
			client = "Not set"
		}
		fmt.Printf("%-4d %-30s %-25s %-10s %-20s\n",
			cycle.ID,
			truncate(cycle.Name, 30),
			cycle.Period(),
			rate,
			truncate(client, 20))
	}
	return nil
}

func runCycleAssign(cmd *cobra.Command, args []string) error {
	cycleID, err := parseCycleID(args[0])
	if err != nil {
		return err
	}

	cfg, st, err := openStore()
	if err != nil {
		return err
	}

	cycle, err := st.Cycles.Get(cycleID)
	if err != nil {
		return err
	}

	assigner := billing.NewAssigner(st.Events)
	candidates, err := assigner.Candidates(cycle)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Printf("No unassigned events found for cycle period %s\n", cycle.Period())
		return nil
	}

	fmt.Printf("\nAssigning events to cycle: %s\n", cycle.Name)
	fmt.Printf("Period: %s\n", cycle.Period())
	fmt.Println(strings.Repeat("-", 72))
	for i, event := range candidates {
		fmt.Printf("%3d. %-40s | %s | %5.1fh\n",
			i+1,
			truncate(event.Title, 40),
			event.StartTime.In(cfg.Location()).Format("2006-01-02 15:04"),
			event.DurationHours)
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("Total available: %.1f hours\n\n", billing.TotalHours(candidates))

	// Re-prompt on malformed selections instead of aborting.
	var chosen []models.CalendarEvent
	for {
		var selection string
		input := huh.NewInput().
			Title("Events to include").
			Description("e.g. 1,3,5-8 or 'all'").
			Value(&selection)
		if err := input.Run(); err != nil {
			return err
		}

		chosen, err = assigner.Assign(candidates, selection, cycle.ID)
		var selErr *billing.SelectionError
		if errors.As(err, &selErr) {
			fmt.Printf("%v\n\n", selErr)
			continue
		}
		if err != nil {
			return err
		}
		break
	}

	if len(chosen) == 0 {
		fmt.Println("No events selected")
		return nil
	}

	fmt.Printf("Assigned %d events (%.1f hours) to cycle\n",
		len(chosen), billing.TotalHours(chosen))
	return nil
}
