package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"invoicer/internal/billing"
	"invoicer/internal/calendar"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch calendar events for a date range",
	Long: `Fetch timed events from Google Calendar between two dates and store
them locally as unassigned events.

All-day events are skipped. Re-fetching an event that was already
stored overwrites it, which also clears any cycle assignment it had.`,
	Example: `  # Fetch events for March from the primary calendar
  invoicer fetch --start 2026-03-01 --end 2026-03-31

  # Fetch from a specific calendar
  invoicer fetch --start 2026-03-01 --end 2026-03-31 --calendar work@example.com`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	fetchCmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	fetchCmd.Flags().String("calendar", "", "Calendar ID (default: primary)")
	fetchCmd.MarkFlagRequired("start")
	fetchCmd.MarkFlagRequired("end")
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("fetch")

	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	calendarID, _ := cmd.Flags().GetString("calendar")

	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	if calendarID == "" {
		calendarID = cfg.DefaultCalendar
	}

	if !calendar.IsAuthenticated(cfg) {
		return fmt.Errorf("not authenticated; run: invoicer auth")
	}

	client, err := calendar.NewGoogleCalendar(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Fetching events from %s to %s...\n", start, end)
	events, err := client.FetchEvents(cmd.Context(), start, end, calendarID)
	if err != nil {
		log.Error().Err(err).Msg("Fetch failed")
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No events found in the specified date range.")
		return nil
	}

	stored := toStoredEvents(events)
	if err := st.Events.Upsert(stored); err != nil {
		return err
	}

	fmt.Printf("\nFound %d events:\n", len(events))
	fmt.Println(strings.Repeat("-", 72))
	for i, event := range stored {
		fmt.Printf("%3d. %-40s | %s | %5.1fh\n",
			i+1,
			truncate(event.Title, 40),
			event.StartTime.In(cfg.Location()).Format("2006-01-02 15:04"),
			event.DurationHours)
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("Total: %.1f hours\n", billing.TotalHours(stored))
	return nil
}

// toStoredEvents maps fetched events to their stored form. The cycle
// link is always written empty: ingestion is not cycle-aware.
func toStoredEvents(events []calendar.Event) []models.CalendarEvent {
	stored := make([]models.CalendarEvent, 0, len(events))
	for _, event := range events {
		stored = append(stored, models.CalendarEvent{
			EventID:       event.ID,
			Title:         event.Summary,
			Description:   event.Description,
			StartTime:     event.Start,
			EndTime:       event.End,
			DurationHours: event.DurationHours,
		})
	}
	return stored
}
