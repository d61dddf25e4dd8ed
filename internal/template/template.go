// Package template instantiates stored appointment templates into concrete
// events, expanding recurring templates via their RRULE.
package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"pawsched/internal/event"
	"pawsched/internal/store"
)

// maxOccurrences caps a single expansion so a runaway rule (or an open
// ended range) cannot flood the store.
const maxOccurrences = 500

// Title builds the event title from the template pattern. A {client}
// placeholder is substituted; patterns without one get the client name
// prefixed, matching the "Client 30" title convention the classifier
// expects.
func Title(tpl store.Template, client string) string {
	if strings.Contains(tpl.TitlePattern, "{client}") {
		return strings.TrimSpace(strings.ReplaceAll(tpl.TitlePattern, "{client}", client))
	}
	if client == "" {
		return strings.TrimSpace(tpl.TitlePattern)
	}
	return strings.TrimSpace(client + " " + tpl.TitlePattern)
}

// Instantiate creates a single event from the template at the given start.
func Instantiate(tpl store.Template, client string, start time.Time) event.Event {
	return event.Event{
		ID:       uuid.NewString(),
		Title:    Title(tpl, client),
		Start:    start,
		End:      start.Add(time.Duration(tpl.DurationMinutes) * time.Minute),
		Location: tpl.Location,
		Notes:    tpl.Notes,
		Type:     event.Type(tpl.Type),
	}
}

// Expand instantiates the template for every occurrence of its RRULE within
// [from, to], inclusive. The first occurrence anchors at start's clock
// time. Templates without an RRULE expand to the single event at start.
func Expand(tpl store.Template, client string, start, until time.Time) ([]event.Event, error) {
	if tpl.RRule == "" {
		return []event.Event{Instantiate(tpl, client, start)}, nil
	}

	rule, err := rrule.StrToRRule(tpl.RRule)
	if err != nil {
		return nil, fmt.Errorf("parsing template rule %q: %w", tpl.RRule, err)
	}
	rule.DTStart(start)

	times := rule.Between(start.Add(-time.Second), until, true)
	if len(times) > maxOccurrences {
		times = times[:maxOccurrences]
	}

	events := make([]event.Event, 0, len(times))
	for _, t := range times {
		events = append(events, Instantiate(tpl, client, t))
	}
	return events, nil
}
