package event

import (
	"fmt"
	"regexp"
	"time"
)

var (
	overnightPattern = regexp.MustCompile(`(?i)\b(HS|Housesit|Overnight)\b`)
	endMarkerPattern = regexp.MustCompile(`(?i)end\s*(overnight|hs|housesit)`)
	nailTrimPattern  = regexp.MustCompile(`(?i)nail\s*trim`)
	durationPattern  = regexp.MustCompile(`(?i)\b(15|20|30|45|60)\b`)
	meetGreetPattern = regexp.MustCompile(`(?i)\b(MG|M&G|Meet\s*&\s*Greet|Meet\s+and\s+Greet)\b`)
)

// IsOvernight reports whether the event is a housesit/overnight span, by
// title marker or explicit type.
func IsOvernight(e Event) bool {
	if e.Type == TypeOvernight {
		return true
	}
	return overnightPattern.MatchString(e.Title) && !endMarkerPattern.MatchString(e.Title)
}

// IsEndMarker reports whether the title is an end-of-overnight bookkeeping
// marker. These are never billable visits and are excluded from exports.
func IsEndMarker(title string) bool {
	return endMarkerPattern.MatchString(title)
}

// Nights returns the night count for an overnight span: the difference in
// calendar days between the midnight-normalized start and end, floored at 1.
func Nights(e Event) int {
	if e.Start.IsZero() || e.End.IsZero() {
		return 1
	}
	// Count calendar days by date components rather than dividing wall-clock
	// hours, which undercounts across DST transitions (a 2-night span can be
	// 47 hours of elapsed time).
	start := Midnight(e.Start)
	end := Midnight(e.End)
	days := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	if days < 1 {
		return 1
	}
	return days
}

// OccursOn reports whether the event should appear in a report dated day.
// Overnight spans count only on their start date so a multi-night stay does
// not show up as one line item per covered day; everything else matches on
// its start date too, but the distinction matters for callers expanding
// spans across a range.
func OccursOn(e Event, day time.Time) bool {
	if IsEndMarker(e.Title) {
		return false
	}
	return SameDay(e.Start, day)
}

// CoversDay reports whether day falls inside the event's span, start date
// inclusive, checkout day exclusive. The calendar view uses this to draw
// overnight bars; exports use OccursOn instead.
func CoversDay(e Event, day time.Time) bool {
	if !IsOvernight(e) {
		return SameDay(e.Start, day)
	}
	d := Midnight(day)
	return !d.Before(Midnight(e.Start)) && d.Before(Midnight(e.End))
}

// ServiceType derives a human service label from the event. The cascade is
// priority-ordered; first match wins.
func ServiceType(e Event) string {
	if IsOvernight(e) {
		n := Nights(e)
		if n == 1 {
			return "Overnight (1 night)"
		}
		return fmt.Sprintf("Overnight (%d nights)", n)
	}
	if nailTrimPattern.MatchString(e.Title) {
		return "Nail Trim"
	}
	if m := durationPattern.FindString(stripParens(e.Title)); m != "" {
		return m + "-min"
	}
	if meetGreetPattern.MatchString(e.Title) {
		return "Meet & Greet"
	}
	if e.Type == TypeWalk {
		return "Dog Walk"
	}
	return "Visit"
}

// ServiceMinutes returns the billable minutes implied by the service label:
// the duration token when present, otherwise the actual event length.
func ServiceMinutes(e Event) int {
	if m := durationPattern.FindString(stripParens(e.Title)); m != "" {
		switch m {
		case "15":
			return 15
		case "20":
			return 20
		case "30":
			return 30
		case "45":
			return 45
		case "60":
			return 60
		}
	}
	return e.Duration()
}
