package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawsched/internal/event"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEventRoundTrip(t *testing.T) {
	db := testDB(t)

	start := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	work := true
	e := event.Event{
		ID:        "ev-1",
		Title:     "Bella 30",
		Start:     start,
		End:       start.Add(30 * time.Minute),
		Location:  "12 Oak St",
		Type:      event.TypeDropIn,
		WorkEvent: &work,
	}
	require.NoError(t, db.InsertEvent(&e))

	got, err := db.GetEvent("ev-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bella 30", got.Title)
	assert.Equal(t, start, got.Start.UTC())
	assert.Equal(t, "12 Oak St", got.Location)
	require.NotNil(t, got.WorkEvent)
	assert.True(t, *got.WorkEvent)

	missing, err := db.GetEvent("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// Rows are stored in UTC but read back in local time, so consumers keying
// on calendar days and clock times see what the user entered.
func TestEventsScanInLocalTime(t *testing.T) {
	db := testDB(t)

	zone := time.FixedZone("UTC-7", -7*3600)
	start := time.Date(2025, 11, 30, 19, 0, 0, 0, zone)
	e := event.Event{ID: "ev-local", Title: "Bella 30", Start: start, End: start.Add(30 * time.Minute)}
	require.NoError(t, db.InsertEvent(&e))

	got, err := db.GetEvent("ev-local")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Start.Equal(start), "instant must survive the round trip")
	assert.Same(t, time.Local, got.Start.Location())
	assert.Same(t, time.Local, got.End.Location())
}

func TestUpsertIsIdempotent(t *testing.T) {
	db := testDB(t)

	start := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	e := event.Event{ID: "gcal-abc", Title: "Milo 45", Start: start, End: start.Add(45 * time.Minute)}
	require.NoError(t, db.UpsertEvent(&e, "gcal"))

	e.Title = "Milo 45 1st"
	require.NoError(t, db.UpsertEvent(&e, "gcal"))

	all, err := db.AllEvents()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Milo 45 1st", all[0].Title)
}

func TestEventsInRange(t *testing.T) {
	db := testDB(t)

	for i, day := range []int{10, 15, 20} {
		start := time.Date(2025, 11, day, 10, 0, 0, 0, time.UTC)
		e := event.Event{ID: string(rune('a' + i)), Title: "Bella 30", Start: start, End: start.Add(30 * time.Minute)}
		require.NoError(t, db.InsertEvent(&e))
	}

	got, err := db.EventsInRange(
		time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 15, got[0].Start.Day())
}

func TestSetIgnoredMissingEvent(t *testing.T) {
	db := testDB(t)
	assert.Error(t, db.SetIgnored("missing", true))
}

func TestTemplateRoundTrip(t *testing.T) {
	db := testDB(t)

	tpl := Template{
		Name:            "standard-dropin",
		TitlePattern:    "{client} 30",
		Type:            "dropin",
		DurationMinutes: 30,
		RRule:           "FREQ=WEEKLY;BYDAY=MO,WE,FR",
	}
	_, err := db.InsertTemplate(&tpl)
	require.NoError(t, err)

	got, err := db.GetTemplate("standard-dropin")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "{client} 30", got.TitlePattern)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO,WE,FR", got.RRule)

	list, err := db.ListTemplates()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, db.DeleteTemplate("standard-dropin"))
	assert.Error(t, db.DeleteTemplate("standard-dropin"))
}

func TestState(t *testing.T) {
	db := testDB(t)

	v, err := db.GetState("last_sync")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, db.SetState("last_sync", "2025-11-15T10:00:00Z"))
	require.NoError(t, db.SetState("last_sync", "2025-11-16T10:00:00Z"))

	v, err = db.GetState("last_sync")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-16T10:00:00Z", v)
}
