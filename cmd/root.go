package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - generate invoices from your Google Calendar",
	Long: `Invoicer is a command-line tool for freelancers that turns calendar
events into invoices.

Fetch events for a billing period from Google Calendar, group them into
invoice cycles, assign the billable ones, and generate a numbered PDF
invoice with your rates and bank details.

Everything is stored locally in a SQLite database; the only network
access is the read-only Google Calendar fetch.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Invoicer!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
