// Package export turns event lists into grouped, sorted text and CSV
// reports. All functions are pure: they take an event slice plus an options
// record and return freshly computed output, retaining no state between
// calls.
package export

import (
	"sort"
	"strings"
	"time"

	"pawsched/internal/event"
)

// SortField names one sortable dimension of an event.
type SortField string

const (
	SortDate    SortField = "date"
	SortTime    SortField = "time"
	SortClient  SortField = "client"
	SortService SortField = "service"
)

// SortLevel is one tie-break rule in a multi-level sort specification.
type SortLevel struct {
	Field SortField
	Desc  bool
}

// Sort orders events by the given levels, evaluated in order with the first
// nonzero comparison winning. An empty specification defaults to time
// ascending. All ties fall back to start time ascending, so the result is a
// total order regardless of the specification.
func Sort(events []event.Event, levels []SortLevel) []event.Event {
	if len(levels) == 0 {
		levels = []SortLevel{{Field: SortTime}}
	}

	out := make([]event.Event, len(events))
	copy(out, events)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for _, lvl := range levels {
			c := Compare(a, b, lvl.Field)
			if lvl.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return a.Start.Before(b.Start)
	})
	return out
}

// Compare orders two events on a single field, returning -1, 0, or 1.
// Unknown fields compare as equal so a bad specification degrades to the
// chronological fallback instead of failing.
func Compare(a, b event.Event, field SortField) int {
	switch field {
	case SortDate:
		return compareTimes(a.StartDate(), b.StartDate())
	case SortTime:
		// Minute of day only: lets "what hour does this client usually
		// get visited" sorting work across different dates.
		return compareInts(minuteOfDay(a), minuteOfDay(b))
	case SortClient:
		return compareFold(event.ClientName(a.Title), event.ClientName(b.Title))
	case SortService:
		return compareFold(event.ServiceType(a), event.ServiceType(b))
	}
	return 0
}

func minuteOfDay(e event.Event) int {
	return e.Start.Hour()*60 + e.Start.Minute()
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
