package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage generated invoices",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all generated invoices",
	Args:  cobra.NoArgs,
	RunE:  runInvoicesList,
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete INVOICE_NUMBER",
	Short: "Delete an invoice by invoice number",
	Long: `Delete an invoice record and its PDF file.

The invoice number is never reused: the next generated invoice still
continues from the highest number ever allocated.`,
	Example: `  invoicer invoices delete "#003"
  invoicer invoices delete "#003" --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicesDelete,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)

	invoicesDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}

	invoices, err := st.Invoices.List()
	if err != nil {
		return err
	}

	if len(invoices) == 0 {
		fmt.Println("No invoices generated yet.")
		return nil
	}

	fmt.Println("\nGenerated Invoices:")
	fmt.Println(strings.Repeat("-", 88))
	fmt.Printf("%-10s %-12s %-20s %-25s %-15s\n", "Invoice #", "Date", "Cycle", "Client", "Amount")
	fmt.Println(strings.Repeat("-", 88))
	for _, invoice := range invoices {
		cycleName, clientName, currency := "", "", ""
		if invoice.Cycle != nil {
			cycleName = invoice.Cycle.Name
			clientName = invoice.Cycle.ClientName
			currency = invoice.Cycle.Currency
		}
		fmt.Printf("%-10s %-12s %-20s %-25s %s %.0f\n",
			invoice.InvoiceNumber,
			invoice.InvoiceDateString(),
			truncate(cycleName, 20),
			truncate(clientName, 25),
			currency,
			invoice.TotalAmount)
	}
	fmt.Println(strings.Repeat("-", 88))
	fmt.Printf("Total invoices: %d\n", len(invoices))
	return nil
}

func runInvoicesDelete(cmd *cobra.Command, args []string) error {
	number := args[0]
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	_, st, err := openStore()
	if err != nil {
		return err
	}

	invoice, err := st.Invoices.GetByNumber(number)
	if err != nil {
		return err
	}

	fmt.Println("\nInvoice to delete:")
	fmt.Printf("  Invoice #: %s\n", invoice.InvoiceNumber)
	fmt.Printf("  Date:      %s\n", invoice.InvoiceDateString())
	if invoice.Cycle != nil {
		fmt.Printf("  Cycle:     %s\n", invoice.Cycle.Name)
		fmt.Printf("  Client:    %s\n", invoice.Cycle.ClientName)
		fmt.Printf("  Amount:    %s %.0f\n", invoice.Cycle.Currency, invoice.TotalAmount)
	}

	if !skipConfirm {
		var confirmed bool
		confirm := huh.NewConfirm().
			Title("Delete this invoice?").
			Description("This removes both the database record and the PDF file.").
			Value(&confirmed)
		if err := confirm.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	if err := st.Invoices.Delete(number); err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", number, err)
	}

	fmt.Printf("Invoice %s deleted successfully.\n", number)
	return nil
}
