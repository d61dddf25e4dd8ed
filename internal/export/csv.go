package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"pawsched/internal/event"
)

// CSV renders the filtered events as RFC 4180 CSV with a fixed column set.
// Fields containing commas, quotes, or newlines are quoted with embedded
// quotes doubled; line breaks are \n. Returns the sentinel no-events
// message when the filter leaves nothing.
func CSV(events []event.Event, opts Options) string {
	filtered := Filter(events, opts)
	if len(filtered) == 0 {
		return NoEventsMessage
	}
	sorted := Sort(filtered, opts.EventSort)

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"Date", "Time", "Client/Pet", "Service Type", "Duration"}
	if opts.IncludeLocation {
		header = append(header, "Location")
	}
	w.Write(header)

	for _, e := range sorted {
		row := csvRow(e, opts)
		w.Write(row)
	}
	w.Flush()
	return sb.String()
}

func csvRow(e event.Event, opts Options) []string {
	timeLabel := ""
	if !e.Start.IsZero() {
		timeLabel = e.Start.Format("3:04 PM")
	}
	row := []string{
		e.StartDate().Format("2006-01-02"),
		timeLabel,
		event.ClientName(e.Title),
		event.ServiceType(e),
		strconv.Itoa(event.ServiceMinutes(e)),
	}
	if opts.IncludeLocation {
		row = append(row, e.Location)
	}
	return row
}
