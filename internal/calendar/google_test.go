package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendarapi "google.golang.org/api/calendar/v3"
)

func timedItem(start, end string) *calendarapi.Event {
	return &calendarapi.Event{
		Id:      "evt-1",
		Summary: "Client call",
		Start:   &calendarapi.EventDateTime{DateTime: start},
		End:     &calendarapi.EventDateTime{DateTime: end},
	}
}

func TestConvertEvent(t *testing.T) {
	item := timedItem("2026-03-02T09:00:00+05:30", "2026-03-02T10:30:00+05:30")
	item.Description = "Weekly sync"
	item.Attendees = []*calendarapi.EventAttendee{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
	}

	event, skip := convertEvent(item)
	require.Empty(t, skip)
	require.NotNil(t, event)

	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, "Client call", event.Summary)
	assert.Equal(t, "Weekly sync", event.Description)
	assert.Equal(t, 1.5, event.DurationHours)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, event.Attendees)
}

func TestConvertEventDefaultsTitle(t *testing.T) {
	item := timedItem("2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")
	item.Summary = ""

	event, skip := convertEvent(item)
	require.Empty(t, skip)
	assert.Equal(t, "No Title", event.Summary)
}

func TestConvertEventSkips(t *testing.T) {
	tests := []struct {
		name string
		item *calendarapi.Event
		skip string
	}{
		{
			"all-day event",
			&calendarapi.Event{
				Start: &calendarapi.EventDateTime{Date: "2026-03-02"},
				End:   &calendarapi.EventDateTime{Date: "2026-03-03"},
			},
			"all-day event",
		},
		{
			"nil start",
			&calendarapi.Event{End: &calendarapi.EventDateTime{DateTime: "2026-03-02T10:00:00Z"}},
			"all-day event",
		},
		{
			"missing end",
			&calendarapi.Event{Start: &calendarapi.EventDateTime{DateTime: "2026-03-02T09:00:00Z"}},
			"missing end time",
		},
		{
			"unparseable start",
			timedItem("not-a-time", "2026-03-02T10:00:00Z"),
			"unparseable start time",
		},
		{
			"unparseable end",
			timedItem("2026-03-02T09:00:00Z", "soon"),
			"unparseable end time",
		},
		{
			"zero duration",
			timedItem("2026-03-02T09:00:00Z", "2026-03-02T09:00:00Z"),
			"end not after start",
		},
		{
			"end before start",
			timedItem("2026-03-02T10:00:00Z", "2026-03-02T09:00:00Z"),
			"end not after start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, skip := convertEvent(tt.item)
			assert.Nil(t, event)
			assert.Equal(t, tt.skip, skip)
		})
	}
}

func TestConvertEventRoundsDuration(t *testing.T) {
	// 50 minutes is 0.8333... hours and must round to 2 decimals.
	event, skip := convertEvent(timedItem("2026-03-02T09:00:00Z", "2026-03-02T09:50:00Z"))
	require.Empty(t, skip)
	assert.Equal(t, 0.83, event.DurationHours)
}

func TestRoundHours(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.0, 1.0},
		{1.25, 1.25},
		{0.833333, 0.83},
		{2.666666, 2.67},
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundHours(tt.in), 0.0001, "RoundHours(%v)", tt.in)
	}
}
