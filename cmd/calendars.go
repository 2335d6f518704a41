package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/internal/calendar"
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List calendars available to the authenticated user",
	Args:  cobra.NoArgs,
	RunE:  runCalendars,
}

func init() {
	rootCmd.AddCommand(calendarsCmd)
}

func runCalendars(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := calendar.NewGoogleCalendar(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	calendars, err := client.ListCalendars(cmd.Context())
	if err != nil {
		return err
	}

	if len(calendars) == 0 {
		fmt.Println("No calendars found.")
		return nil
	}

	fmt.Println("\nAvailable calendars:")
	for _, cal := range calendars {
		marker := " "
		if cal.Primary {
			marker = "*"
		}
		fmt.Printf("%s %-40s %s\n", marker, truncate(cal.Summary, 40), cal.ID)
	}
	fmt.Println("\n* = primary calendar")
	return nil
}
