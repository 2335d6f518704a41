package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/billing"
	"invoicer/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return st
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timedEvent(externalID string, start time.Time, hours float64) models.CalendarEvent {
	return models.CalendarEvent{
		EventID:       externalID,
		Title:         "Session " + externalID,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(hours * float64(time.Hour))),
		DurationHours: hours,
	}
}

func createCycle(t *testing.T, st *Store, name string, start, end time.Time) *models.InvoiceCycle {
	t.Helper()
	cycle := &models.InvoiceCycle{Name: name, StartDate: start, EndDate: end, Currency: "INR"}
	require.NoError(t, st.Cycles.Create(cycle))
	return cycle
}

func TestCycleCreateAndGet(t *testing.T) {
	st := newTestStore(t)

	rate := 1200.0
	cycle := &models.InvoiceCycle{
		Name:       "Acme March",
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 3, 31),
		HourlyRate: &rate,
		Currency:   "INR",
		ClientName: "Acme Corp",
	}
	require.NoError(t, st.Cycles.Create(cycle))
	require.NotZero(t, cycle.ID)

	got, err := st.Cycles.Get(cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme March", got.Name)
	assert.Equal(t, "2026-03-01", got.StartDateString())
	assert.Equal(t, "2026-03-31", got.EndDateString())
	require.NotNil(t, got.HourlyRate)
	assert.Equal(t, 1200.0, *got.HourlyRate)
}

func TestCycleCreateRejectsInvertedDates(t *testing.T) {
	st := newTestStore(t)

	err := st.Cycles.Create(&models.InvoiceCycle{
		Name:      "Backwards",
		StartDate: date(2026, 3, 31),
		EndDate:   date(2026, 3, 1),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, billing.ErrValidation))
}

func TestCycleGetNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Cycles.Get(999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, billing.ErrNotFound))
}

func TestCycleListNewestFirst(t *testing.T) {
	st := newTestStore(t)

	older := &models.InvoiceCycle{Name: "older", StartDate: date(2026, 1, 1), EndDate: date(2026, 1, 31)}
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, st.Cycles.Create(older))
	createCycle(t, st, "newer", date(2026, 2, 1), date(2026, 2, 28))

	cycles, err := st.Cycles.List()
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, "newer", cycles[0].Name)
	assert.Equal(t, "older", cycles[1].Name)
}

func TestCycleUpdateRate(t *testing.T) {
	st := newTestStore(t)
	cycle := createCycle(t, st, "c", date(2026, 3, 1), date(2026, 3, 31))

	require.NoError(t, st.Cycles.UpdateRate(cycle.ID, 1500))

	got, err := st.Cycles.Get(cycle.ID)
	require.NoError(t, err)
	require.NotNil(t, got.HourlyRate)
	assert.Equal(t, 1500.0, *got.HourlyRate)

	err = st.Cycles.UpdateRate(999, 1500)
	assert.True(t, errors.Is(err, billing.ErrNotFound))
}

func TestEventUpsertIsIdempotent(t *testing.T) {
	st := newTestStore(t)

	event := timedEvent("ext-1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 1.5)
	require.NoError(t, st.Events.Upsert([]models.CalendarEvent{event}))
	require.NoError(t, st.Events.Upsert([]models.CalendarEvent{event}))

	events, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ext-1", events[0].EventID)
	assert.Equal(t, 1.5, events[0].DurationHours)
}

func TestEventUpsertResetsAssignment(t *testing.T) {
	st := newTestStore(t)
	cycle := createCycle(t, st, "c", date(2026, 3, 1), date(2026, 3, 31))

	event := timedEvent("ext-1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 1.5)
	require.NoError(t, st.Events.Upsert([]models.CalendarEvent{event}))

	stored, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.NoError(t, st.Events.Assign([]uint{stored[0].ID}, cycle.ID))

	// Re-fetching the same external event clears the assignment.
	require.NoError(t, st.Events.Upsert([]models.CalendarEvent{event}))

	unassigned, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Len(t, unassigned, 1)

	bound, err := st.Events.ListByCycle(cycle.ID)
	require.NoError(t, err)
	assert.Empty(t, bound)
}

func TestListUnassignedFiltersAndOrders(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Events.Upsert([]models.CalendarEvent{
		timedEvent("late", time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC), 2),
		timedEvent("early", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 1),
		timedEvent("before-range", time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC), 1),
		timedEvent("after-range", time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), 1),
	}))

	events, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "early", events[0].EventID)
	assert.Equal(t, "late", events[1].EventID)
}

func TestListUnassignedIncludesRangeBoundaries(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Events.Upsert([]models.CalendarEvent{
		timedEvent("first-day", time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC), 1),
		timedEvent("last-day", time.Date(2026, 3, 31, 22, 0, 0, 0, time.UTC), 1),
	}))

	events, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestAssignBindsExactlyTheGivenEvents(t *testing.T) {
	st := newTestStore(t)
	cycle := createCycle(t, st, "c", date(2026, 3, 1), date(2026, 3, 31))

	require.NoError(t, st.Events.Upsert([]models.CalendarEvent{
		timedEvent("e1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 1),
		timedEvent("e2", time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), 2),
		timedEvent("e3", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), 3),
	}))

	candidates, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	require.NoError(t, st.Events.Assign([]uint{candidates[0].ID, candidates[1].ID}, cycle.ID))

	unassigned, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "e3", unassigned[0].EventID)

	bound, err := st.Events.ListByCycle(cycle.ID)
	require.NoError(t, err)
	require.Len(t, bound, 2)
	assert.Equal(t, "e1", bound[0].EventID)
	assert.Equal(t, "e2", bound[1].EventID)
}

func TestAssignUnknownIDFailsWithoutPartialEffect(t *testing.T) {
	st := newTestStore(t)
	cycle := createCycle(t, st, "c", date(2026, 3, 1), date(2026, 3, 31))

	require.NoError(t, st.Events.Upsert([]models.CalendarEvent{
		timedEvent("e1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 1),
	}))
	candidates, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)

	err = st.Events.Assign([]uint{candidates[0].ID, 9999}, cycle.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, billing.ErrNotFound))

	unassigned, err := st.Events.ListUnassigned("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Len(t, unassigned, 1, "failed assign must roll back")
}

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"first invoice", nil, "#001"},
		{"sequential", []string{"#001", "#002"}, "#003"},
		{"gap from deletion not refilled", []string{"#001", "#002", "#004"}, "#005"},
		{"ignores foreign formats", []string{"#001", "INV-9"}, "#002"},
		{"grows past three digits", []string{"#999"}, "#1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextInvoiceNumber(tt.existing))
		})
	}
}

func TestInvoiceNumberingAgainstDatabase(t *testing.T) {
	st := newTestStore(t)
	cycle := createCycle(t, st, "c", date(2026, 3, 1), date(2026, 3, 31))

	number, err := st.Invoices.NextNumber()
	require.NoError(t, err)
	assert.Equal(t, "#001", number)

	for _, n := range []string{"#001", "#002", "#004"} {
		require.NoError(t, st.Invoices.Create(&models.Invoice{
			CycleID:       cycle.ID,
			InvoiceNumber: n,
			InvoiceDate:   date(2026, 3, 31),
			DueDate:       date(2026, 4, 30),
			TotalHours:    1,
			HourlyRate:    100,
			TotalAmount:   100,
		}))
	}

	number, err = st.Invoices.NextNumber()
	require.NoError(t, err)
	assert.Equal(t, "#005", number)
}

func TestInvoiceDeleteRemovesRecordAndArtifact(t *testing.T) {
	st := newTestStore(t)
	cycle := createCycle(t, st, "c", date(2026, 3, 1), date(2026, 3, 31))

	artifact := filepath.Join(t.TempDir(), "invoice-001-2026-03-31.pdf")
	require.NoError(t, os.WriteFile(artifact, []byte("%PDF-1.4"), 0o644))

	require.NoError(t, st.Invoices.Create(&models.Invoice{
		CycleID:       cycle.ID,
		InvoiceNumber: "#001",
		InvoiceDate:   date(2026, 3, 31),
		DueDate:       date(2026, 4, 30),
		TotalHours:    3.75,
		HourlyRate:    1000,
		TotalAmount:   3750,
		PDFPath:       artifact,
	}))

	require.NoError(t, st.Invoices.Delete("#001"))

	_, err := os.Stat(artifact)
	assert.True(t, os.IsNotExist(err), "artifact file must be removed")

	_, err = st.Invoices.GetByNumber("#001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, billing.ErrNotFound))
}

func TestInvoiceDeleteUnknownNumber(t *testing.T) {
	st := newTestStore(t)

	err := st.Invoices.Delete("#404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, billing.ErrNotFound))
}

func TestInvoiceListPreloadsCycle(t *testing.T) {
	st := newTestStore(t)
	cycle := createCycle(t, st, "Acme March", date(2026, 3, 1), date(2026, 3, 31))

	require.NoError(t, st.Invoices.Create(&models.Invoice{
		CycleID:       cycle.ID,
		InvoiceNumber: "#001",
		InvoiceDate:   date(2026, 3, 31),
		DueDate:       date(2026, 4, 30),
		TotalHours:    1,
		HourlyRate:    100,
		TotalAmount:   100,
	}))

	invoices, err := st.Invoices.List()
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	require.NotNil(t, invoices[0].Cycle)
	assert.Equal(t, "Acme March", invoices[0].Cycle.Name)
}

func TestProfileSingleton(t *testing.T) {
	st := newTestStore(t)

	profile, err := st.Profiles.GetOrCreate()
	require.NoError(t, err)
	assert.Equal(t, models.UserProfileID, profile.ID)
	assert.False(t, profile.Complete())

	profile.FullName = "Jane Freelancer"
	profile.Address = "42 Main St"
	profile.AccountNumber = "1234567890"
	require.NoError(t, st.Profiles.Update(profile))

	again, err := st.Profiles.GetOrCreate()
	require.NoError(t, err)
	assert.Equal(t, models.UserProfileID, again.ID)
	assert.Equal(t, "Jane Freelancer", again.FullName)
	assert.True(t, again.Complete())
}
