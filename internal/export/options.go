package export

import (
	"strings"
	"time"

	"pawsched/internal/event"
)

// Options is the caller's option bag for one export request. Zero values
// mean "no constraint": zero dates leave the range unbounded, an empty
// GroupBy produces a flat list.
type Options struct {
	StartDate time.Time // inclusive
	EndDate   time.Time // inclusive

	IncludeTime     bool
	IncludeLocation bool

	GroupBy   []GroupLevel
	GroupDesc bool
	EventSort []SortLevel

	WorkOnly   bool
	SearchTerm string
}

// ParseGroupBy parses a dash-joined grouping specification such as
// "client-service" or "week-date". "none" and "" mean no grouping.
// Unrecognized segments are kept; GroupKey buckets them under "Unknown".
func ParseGroupBy(s string) []GroupLevel {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return nil
	}
	var levels []GroupLevel
	for _, part := range strings.Split(s, "-") {
		if part = strings.TrimSpace(part); part != "" {
			levels = append(levels, GroupLevel(part))
		}
	}
	return levels
}

// ParseEventSort parses a comma-separated list of sort levels, each
// "field" or "field:desc", e.g. "client,time:desc".
func ParseEventSort(s string) []SortLevel {
	var levels []SortLevel
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		field, dir, _ := strings.Cut(part, ":")
		levels = append(levels, SortLevel{
			Field: SortField(field),
			Desc:  dir == "desc",
		})
	}
	return levels
}

// Filter applies the shared export filter pipeline: search term, work-only
// classification, inclusive date range, and exclusion of ignored entries,
// all-day padding, and end-of-overnight markers. Overnight spans pass the
// date filter on their start date only, so a multi-night stay contributes a
// single line to any report.
func Filter(events []event.Event, opts Options) []event.Event {
	var out []event.Event
	term := strings.ToLower(strings.TrimSpace(opts.SearchTerm))

	for _, e := range events {
		if term != "" && !strings.Contains(strings.ToLower(e.Title), term) {
			continue
		}
		if e.Ignored || e.AllDay {
			continue
		}
		if event.IsEndMarker(e.Title) {
			continue
		}
		if opts.WorkOnly && !e.IsWork() {
			continue
		}
		day := e.StartDate()
		if !opts.StartDate.IsZero() && day.Before(event.Midnight(opts.StartDate)) {
			continue
		}
		if !opts.EndDate.IsZero() && day.After(event.Midnight(opts.EndDate)) {
			continue
		}
		out = append(out, e)
	}
	return out
}
