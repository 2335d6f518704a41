// Package calendar fetches events from Google Calendar for a billing
// period and handles the OAuth2 installed-app flow.
//
// Required setup (one-time):
//   - Create OAuth 2.0 credentials (Desktop app) in Google Cloud Console
//     with the Calendar API enabled, and save the downloaded JSON to the
//     configured credentials path.
//   - Run the auth command to complete the browser consent flow; the
//     token is cached as a JSON file and refreshed automatically.
//
// All-day events carry no time-of-day component and are excluded before
// ingestion. Event durations are derived as (end - start) in hours,
// rounded to 2 decimal places.
package calendar

import (
	"context"
	"time"
)

// Event is a fetched calendar entry, decoupled from the wire type.
type Event struct {
	// ID is the stable external key of the calendar entry.
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time

	// DurationHours is (End - Start) in hours, rounded to 2 decimals.
	DurationHours float64

	// Attendees holds the attendee email addresses.
	Attendees []string
}

// CalendarInfo describes a calendar available to the authenticated user.
type CalendarInfo struct {
	ID      string
	Summary string
	Primary bool
}

// Service defines the calendar provider contract.
type Service interface {
	// FetchEvents returns the timed events between startDate and
	// endDate (inclusive, YYYY-MM-DD) for the given calendar, ordered
	// by start time. All-day events are excluded.
	FetchEvents(ctx context.Context, startDate, endDate, calendarID string) ([]Event, error)

	// ListCalendars returns the calendars visible to the user.
	ListCalendars(ctx context.Context) ([]CalendarInfo, error)
}
