package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pawsched/internal/event"
)

func staticLoader(events []event.Event) Loader {
	return func(from, to time.Time) ([]event.Event, error) {
		return events, nil
	}
}

func TestEventsOnCoversOvernights(t *testing.T) {
	start := time.Date(2025, 11, 15, 18, 0, 0, 0, time.UTC)
	events := []event.Event{
		{Title: "Rocky HS", Start: start, End: start.AddDate(0, 0, 2)},
		{Title: "Bella 30", Start: start.AddDate(0, 0, 1), End: start.AddDate(0, 0, 1).Add(30 * time.Minute)},
	}

	app := NewApp(staticLoader(events), start)
	app.events = events

	assert.Len(t, app.eventsOn(time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)), 1)
	assert.Len(t, app.eventsOn(time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC)), 2)
	assert.Empty(t, app.eventsOn(time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC)))
}

func TestEventsOnTitleFilter(t *testing.T) {
	start := time.Date(2025, 11, 15, 9, 0, 0, 0, time.UTC)
	events := []event.Event{
		{Title: "Rocky 30", Start: start, End: start.Add(30 * time.Minute)},
		{Title: "Bella 30", Start: start.Add(time.Hour), End: start.Add(90 * time.Minute)},
	}

	app := NewApp(staticLoader(events), start)
	app.events = events
	app.search.SetValue("rocky")

	day := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	got := app.eventsOn(day)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Rocky 30", got[0].Title)
	}
}

func TestMoveSelectionRollsMonth(t *testing.T) {
	now := time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)
	app := NewApp(staticLoader(nil), now)

	_, cmd := app.moveSelection(1)
	assert.Equal(t, time.December, app.selected.Month())
	assert.Equal(t, time.December, app.month.Month())
	assert.NotNil(t, cmd, "month change should trigger a reload")
}
