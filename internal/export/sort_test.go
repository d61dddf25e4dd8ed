package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawsched/internal/event"
)

func at(day, hour int) time.Time {
	return time.Date(2025, 11, day, hour, 0, 0, 0, time.UTC)
}

func ev(title string, start time.Time, mins int) event.Event {
	return event.Event{
		Title: title,
		Start: start,
		End:   start.Add(time.Duration(mins) * time.Minute),
	}
}

func TestSortMultiLevel(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", at(16, 10), 30),
		ev("Apollo 45", at(15, 14), 45),
		ev("Bella 30", at(15, 10), 30),
	}

	sorted := Sort(events, []SortLevel{
		{Field: SortClient},
		{Field: SortDate},
	})

	require.Len(t, sorted, 3)
	assert.Equal(t, "Apollo 45", sorted[0].Title)
	assert.Equal(t, at(15, 10), sorted[1].Start)
	assert.Equal(t, at(16, 10), sorted[2].Start)
}

func TestSortTimeIgnoresDate(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", at(10, 14), 30),
		ev("Milo 30", at(20, 8), 30),
	}

	sorted := Sort(events, []SortLevel{{Field: SortTime}})
	// The later date sorts first because its clock time is earlier.
	assert.Equal(t, "Milo 30", sorted[0].Title)
}

func TestSortDefaultsToTimeAscending(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", at(15, 16), 30),
		ev("Milo 30", at(15, 9), 30),
	}
	sorted := Sort(events, nil)
	assert.Equal(t, "Milo 30", sorted[0].Title)
}

// Re-sorting an already sorted list is a no-op, and adjacent pairs never
// violate the requested order: the fallback to start time makes the order
// total.
func TestSortIsIdempotentAndTotal(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", at(15, 10), 30),
		ev("Bella 30", at(14, 10), 30),
		ev("Milo 45", at(15, 10), 45),
		ev("Apollo 45", at(15, 8), 45),
	}
	levels := []SortLevel{{Field: SortService, Desc: true}, {Field: SortClient}}

	once := Sort(events, levels)
	twice := Sort(once, levels)
	assert.Equal(t, once, twice)

	for i := 1; i < len(once); i++ {
		a, b := once[i-1], once[i]
		c := -Compare(a, b, SortService)
		if c == 0 {
			c = Compare(a, b, SortClient)
		}
		assert.LessOrEqual(t, c, 0)
	}
}

func TestUnknownSortFieldFallsBackToStart(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", at(16, 10), 30),
		ev("Milo 30", at(15, 10), 30),
	}
	sorted := Sort(events, []SortLevel{{Field: SortField("bogus")}})
	assert.Equal(t, "Milo 30", sorted[0].Title)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", at(16, 10), 30),
		ev("Milo 30", at(15, 10), 30),
	}
	Sort(events, []SortLevel{{Field: SortDate}})
	assert.Equal(t, "Bella 30", events[0].Title)
}
