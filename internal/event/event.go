// Package event defines the calendar event model and the title-based
// classification rules used across scheduling, stats, and exports.
package event

import "time"

// Type is a coarse service category, used as a formatting fallback when
// title-pattern inference comes up empty.
type Type string

const (
	TypeDropIn    Type = "dropin"
	TypeWalk      Type = "walk"
	TypeOvernight Type = "overnight"
	TypeMeetGreet Type = "meet-greet"
	TypeOther     Type = "other"
)

// Event is a single calendar entry. Title is the only field the classifier
// and formatters reason about; client identity is inferred from it, not
// stored as a foreign key.
type Event struct {
	ID       string
	Title    string
	Start    time.Time
	End      time.Time
	Location string
	Notes    string
	AllDay   bool
	Ignored  bool
	Type     Type

	// WorkEvent caches the classification result. nil means not yet
	// classified; callers go through IsWork which trusts the cache when
	// present and recomputes from Title otherwise.
	WorkEvent *bool
}

// IsWork reports whether the event represents billable work. A cached
// classification is trusted as-is; otherwise the title is classified.
func (e Event) IsWork() bool {
	if e.WorkEvent != nil {
		return *e.WorkEvent
	}
	return IsWorkTitle(e.Title)
}

// Duration returns the event length in minutes, clamped at zero for
// pathological data (zero times, end before start).
func (e Event) Duration() int {
	if e.Start.IsZero() || e.End.IsZero() {
		return 0
	}
	mins := int(e.End.Sub(e.Start).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}

// StartDate returns the event's start truncated to midnight in its own
// location. Derived, never mutates the stored time.
func (e Event) StartDate() time.Time {
	return Midnight(e.Start)
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
