package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mkEvent(title string, start, end time.Time) Event {
	return Event{Title: title, Start: start, End: end}
}

func TestServiceType(t *testing.T) {
	day := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"duration 30", mkEvent("Bella 30", day, day.Add(30*time.Minute)), "30-min"},
		{"duration 45", mkEvent("Milo 45", day, day.Add(45*time.Minute)), "45-min"},
		{"nail trim", mkEvent("Pepper nail trim", day, day.Add(15*time.Minute)), "Nail Trim"},
		{"meet greet", mkEvent("Daisy MG", day, day.Add(time.Hour)), "Meet & Greet"},
		{"overnight one night", mkEvent("Rocky HS", day, day.AddDate(0, 0, 1)), "Overnight (1 night)"},
		{"overnight two nights", mkEvent("Rocky HS", day, day.AddDate(0, 0, 2)), "Overnight (2 nights)"},
		{"walk fallback", Event{Title: "Buddy", Type: TypeWalk, Start: day, End: day.Add(time.Hour)}, "Dog Walk"},
		{"generic fallback", mkEvent("Buddy", day, day.Add(time.Hour)), "Visit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServiceType(tt.ev))
		})
	}
}

func TestNightsFloorsAtOne(t *testing.T) {
	day := time.Date(2025, 11, 15, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, Nights(mkEvent("Rocky HS", day, day.Add(2*time.Hour))))
	assert.Equal(t, 1, Nights(Event{Title: "Rocky HS"}))
	assert.Equal(t, 3, Nights(mkEvent("Rocky HS", day, day.AddDate(0, 0, 3))))
}

// A spring-forward weekend has a 23-hour day, so elapsed hours undercount
// the calendar-day difference. Night counting must go by dates.
func TestNightsAcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	e := mkEvent("Rocky HS",
		time.Date(2026, 3, 7, 18, 0, 0, 0, loc),
		time.Date(2026, 3, 9, 9, 0, 0, 0, loc))
	assert.Equal(t, 2, Nights(e))
}

func TestEndMarkerExcluded(t *testing.T) {
	assert.True(t, IsEndMarker("End HS - Rocky"))
	assert.True(t, IsEndMarker("end overnight"))
	assert.True(t, IsEndMarker("End Housesit"))
	assert.False(t, IsEndMarker("Rocky HS"))

	day := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	assert.False(t, OccursOn(mkEvent("End HS - Rocky", day, day), day))
}

// An overnight spanning D1..D3 reports only on D1.
func TestOvernightSingleAppearance(t *testing.T) {
	d1 := time.Date(2025, 11, 15, 18, 0, 0, 0, time.UTC)
	d3 := time.Date(2025, 11, 17, 9, 0, 0, 0, time.UTC)
	ev := mkEvent("Rocky HS", d1, d3)

	assert.True(t, OccursOn(ev, d1))
	assert.False(t, OccursOn(ev, d1.AddDate(0, 0, 1)))
	assert.False(t, OccursOn(ev, d3))

	// The calendar view still shades every covered day.
	assert.True(t, CoversDay(ev, d1))
	assert.True(t, CoversDay(ev, d1.AddDate(0, 0, 1)))
	assert.False(t, CoversDay(ev, d3))
}

func TestServiceMinutes(t *testing.T) {
	day := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, ServiceMinutes(mkEvent("Bella 30", day, day.Add(time.Hour))))
	assert.Equal(t, 90, ServiceMinutes(mkEvent("Buddy walk", day, day.Add(90*time.Minute))))
	assert.Equal(t, 0, ServiceMinutes(Event{Title: "Buddy"}))
}
