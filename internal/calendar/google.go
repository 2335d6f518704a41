package calendar

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"invoicer/internal/config"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// GoogleCalendar implements Service against the Google Calendar API.
type GoogleCalendar struct {
	service  *calendarapi.Service
	location *time.Location
	log      zerolog.Logger
}

// NewGoogleCalendar creates a calendar client using the stored OAuth2
// token. It fails with ErrNotAuthenticated when no token is available.
func NewGoogleCalendar(ctx context.Context, cfg *config.Config) (Service, error) {
	const op = "NewGoogleCalendar"

	if !IsAuthenticated(cfg) {
		return nil, WrapCalendarError(op, ErrNotAuthenticated, "run the auth command first")
	}

	conf, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, WrapCalendarError(op, err, "reading stored token")
	}

	source := &persistingTokenSource{
		source: conf.TokenSource(ctx, token),
		path:   cfg.TokenFile,
		last:   token.AccessToken,
	}

	service, err := calendarapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, WrapCalendarError(op, err, "creating Calendar API client")
	}

	return &GoogleCalendar{
		service:  service,
		location: cfg.Location(),
		log:      logger.WithComponent("google-calendar"),
	}, nil
}

// FetchEvents returns the timed events between startDate and endDate
// (inclusive) for the given calendar, ordered by start time.
func (g *GoogleCalendar) FetchEvents(ctx context.Context, startDate, endDate, calendarID string) ([]Event, error) {
	const op = "FetchEvents"

	start, err := time.ParseInLocation(models.DateFormat, startDate, g.location)
	if err != nil {
		return nil, WrapCalendarError(op, err, fmt.Sprintf("invalid start date %q", startDate))
	}
	end, err := time.ParseInLocation(models.DateFormat, endDate, g.location)
	if err != nil {
		return nil, WrapCalendarError(op, err, fmt.Sprintf("invalid end date %q", endDate))
	}
	// End bound is exclusive on the API; push it to the next midnight
	// so the whole end date is covered.
	end = end.AddDate(0, 0, 1)

	result, err := g.service.Events.List(calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapCalendarError(op, fmt.Errorf("%w: %v", ErrFetchFailed, err), calendarID)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		event, skip := convertEvent(item)
		if skip != "" {
			g.log.Debug().
				Str("event_id", item.Id).
				Str("reason", skip).
				Msg("Skipping event")
			continue
		}
		events = append(events, *event)
	}

	g.log.Info().
		Str("calendar", calendarID).
		Str("start", startDate).
		Str("end", endDate).
		Int("events", len(events)).
		Int("skipped", len(result.Items)-len(events)).
		Msg("Fetched calendar events")

	return events, nil
}

// ListCalendars returns the calendars visible to the user.
func (g *GoogleCalendar) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	const op = "ListCalendars"

	result, err := g.service.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, WrapCalendarError(op, fmt.Errorf("%w: %v", ErrFetchFailed, err), "calendar list")
	}

	calendars := make([]CalendarInfo, 0, len(result.Items))
	for _, item := range result.Items {
		calendars = append(calendars, CalendarInfo{
			ID:      item.Id,
			Summary: item.Summary,
			Primary: item.Primary,
		})
	}
	return calendars, nil
}

// convertEvent maps a wire event to an Event. A non-empty skip reason
// means the event must not be ingested: all-day events have no
// time-of-day component, and malformed events with end <= start are
// rejected rather than clamped.
func convertEvent(item *calendarapi.Event) (*Event, string) {
	if item.Start == nil || item.Start.DateTime == "" {
		return nil, "all-day event"
	}
	if item.End == nil || item.End.DateTime == "" {
		return nil, "missing end time"
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return nil, "unparseable start time"
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return nil, "unparseable end time"
	}
	if !end.After(start) {
		return nil, "end not after start"
	}

	summary := item.Summary
	if summary == "" {
		summary = "No Title"
	}

	var attendees []string
	for _, attendee := range item.Attendees {
		attendees = append(attendees, attendee.Email)
	}

	return &Event{
		ID:            item.Id,
		Summary:       summary,
		Description:   item.Description,
		Start:         start,
		End:           end,
		DurationHours: RoundHours(end.Sub(start).Hours()),
		Attendees:     attendees,
	}, ""
}

// RoundHours rounds a duration in hours to 2 decimal places.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// persistingTokenSource saves refreshed tokens back to the token file
// so the next run does not need to refresh again.
type persistingTokenSource struct {
	source oauth2.TokenSource
	path   string
	last   string
}

func (t *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := t.source.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != t.last {
		if err := saveToken(t.path, token); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		t.last = token.AccessToken
	}
	return token, nil
}
