// Package ics imports events from iCalendar feeds or files into the local
// event model.
package ics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"

	"pawsched/internal/event"
)

// Fetch retrieves and parses iCalendar events from a URL or file path,
// returning events that overlap with the given time window. Malformed
// events are skipped, not fatal.
func Fetch(ctx context.Context, source string, windowStart, windowEnd time.Time, logger *slog.Logger) ([]event.Event, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching calendar: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("calendar fetch returned status %d", resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("opening calendar file: %w", err)
		}
		r = f
	}
	defer r.Close()

	return decode(r, windowStart, windowEnd, logger)
}

func decode(r io.Reader, windowStart, windowEnd time.Time, logger *slog.Logger) ([]event.Event, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	dec := ical.NewDecoder(r)
	var events []event.Event
	skipped := 0

	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing calendar: %w", err)
		}

		for _, component := range cal.Children {
			if component.Name != ical.CompEvent {
				continue
			}
			ev := ical.Event{Component: component}

			start, err := ev.DateTimeStart(nil)
			if err != nil {
				skipped++
				continue
			}
			end, err := ev.DateTimeEnd(nil)
			if err != nil {
				skipped++
				continue
			}

			if !start.Before(windowEnd) || !end.After(windowStart) {
				continue
			}

			summary, _ := ev.Props.Text(ical.PropSummary)
			if summary == "" {
				skipped++
				continue
			}
			location, _ := ev.Props.Text(ical.PropLocation)
			notes, _ := ev.Props.Text(ical.PropDescription)

			uid, _ := ev.Props.Text(ical.PropUID)
			if uid == "" {
				uid = fmt.Sprintf("ics-%s-%d", summary, start.Unix())
			}

			events = append(events, event.Event{
				ID:       "ics:" + uid,
				Title:    summary,
				Start:    start,
				End:      end,
				Location: location,
				Notes:    notes,
				// Midnight-to-midnight entries are all-day padding, not visits.
				AllDay: isAllDay(start, end),
			})
		}
	}

	if skipped > 0 {
		logger.Debug("skipped malformed or empty calendar events", "count", skipped)
	}
	return events, nil
}

func isAllDay(start, end time.Time) bool {
	if start.Hour() != 0 || start.Minute() != 0 {
		return false
	}
	d := end.Sub(start)
	return d >= 24*time.Hour && d%(24*time.Hour) == 0
}
