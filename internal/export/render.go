package export

import (
	"fmt"
	"strings"

	"pawsched/internal/event"
)

// NoEventsMessage is the sentinel returned when every event was filtered
// out. Callers display it verbatim instead of treating an empty report as
// an error.
const NoEventsMessage = "No events found for the selected filters."

const indentStep = "  "

// Text renders the full text report: summary header, then the grouped or
// flat body. Trailing whitespace is trimmed.
func Text(events []event.Event, opts Options) string {
	filtered := Filter(events, opts)
	if len(filtered) == 0 {
		return NoEventsMessage
	}
	sorted := Sort(filtered, opts.EventSort)

	var sb strings.Builder
	writeHeader(&sb, len(sorted), opts)

	if len(opts.GroupBy) == 0 {
		for _, e := range sorted {
			sb.WriteString("- " + eventLine(e, opts, true) + "\n")
		}
	} else {
		tree := Build(sorted, opts.GroupBy)
		renderNode(&sb, tree, opts, 0, dateEncodedBy(opts.GroupBy))
	}

	return strings.TrimRight(sb.String(), " \n")
}

func writeHeader(sb *strings.Builder, count int, opts Options) {
	label := "All events"
	if opts.WorkOnly {
		label = "Work events"
	}
	sb.WriteString(label)
	if !opts.StartDate.IsZero() || !opts.EndDate.IsZero() {
		sb.WriteString(" " + rangeLabel(opts))
	}
	fmt.Fprintf(sb, " (%d total)\n", count)
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")
}

func rangeLabel(opts Options) string {
	const layout = "Jan 2, 2006"
	switch {
	case opts.StartDate.IsZero():
		return "through " + opts.EndDate.Format(layout)
	case opts.EndDate.IsZero():
		return "from " + opts.StartDate.Format(layout)
	}
	return opts.StartDate.Format(layout) + " to " + opts.EndDate.Format(layout)
}

// dateEncodedBy reports whether any grouping level already encodes the
// calendar date, in which case event lines omit their date field.
func dateEncodedBy(levels []GroupLevel) bool {
	for _, l := range levels {
		switch l {
		case GroupDate, GroupWeek, GroupMonth:
			return true
		}
	}
	return false
}

// renderNode walks the tree depth-first, indenting by depth. Branch headers
// carry the recursive leaf count.
func renderNode(sb *strings.Builder, n *Node, opts Options, depth int, dateInAncestor bool) {
	indent := strings.Repeat(indentStep, depth)

	if n.IsLeaf() {
		for _, e := range n.Events {
			sb.WriteString(indent + "- " + eventLine(e, opts, !dateInAncestor) + "\n")
		}
		return
	}

	level := opts.GroupBy[depth]
	for _, key := range n.SortedKeys(level, opts.GroupDesc) {
		child, _ := n.Children.Get(key)
		count := child.Count()
		noun := "events"
		if count == 1 {
			noun = "event"
		}
		fmt.Fprintf(sb, "%s%s (%d %s)\n", indent, key, count, noun)
		renderNode(sb, child, opts, depth+1, dateInAncestor)
		if depth == 0 {
			sb.WriteString("\n")
		}
	}
}

// eventLine formats one event bullet. withDate is false when an ancestor
// group level already names the date.
func eventLine(e event.Event, opts Options, withDate bool) string {
	var parts []string
	if withDate {
		parts = append(parts, e.StartDate().Format("Jan 2"))
	}
	if opts.IncludeTime && !e.Start.IsZero() {
		parts = append(parts, e.Start.Format("3:04 PM"))
	}

	name := event.ClientName(e.Title)
	if name == "" {
		name = strings.TrimSpace(e.Title)
	}
	svc := event.ServiceType(e)
	parts = append(parts, fmt.Sprintf("%s: %s", name, svc))

	if opts.IncludeLocation && e.Location != "" {
		parts = append(parts, "@ "+e.Location)
	}
	return strings.Join(parts, "  ")
}
