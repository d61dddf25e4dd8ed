package export

import (
	"pawsched/internal/event"
)

// GroupSummary is one top-level group badge for the preview pane.
type GroupSummary struct {
	Label string
	Count int
}

// Row is one structured table row for the preview pane. GroupPath lists the
// ancestor group labels from the top level down.
type Row struct {
	DateLabel       string
	Client          string
	Service         string
	DurationMinutes int
	TimeLabel       string
	Location        string
	GroupPath       []string
}

// Preview is the boundary artifact handed to a UI layer: the rendered text
// and CSV plus structured rows and group badges for table rendering.
type Preview struct {
	Count  int
	Text   string
	CSV    string
	Groups []GroupSummary
	Rows   []Row
}

// BuildPreview runs the full export pipeline once and returns every
// representation the UI needs.
func BuildPreview(events []event.Event, opts Options) Preview {
	filtered := Filter(events, opts)
	p := Preview{
		Count: len(filtered),
		Text:  Text(events, opts),
		CSV:   CSV(events, opts),
	}
	if len(filtered) == 0 {
		return p
	}

	sorted := Sort(filtered, opts.EventSort)
	tree := Build(sorted, opts.GroupBy)

	if !tree.IsLeaf() {
		level := opts.GroupBy[0]
		for _, key := range tree.SortedKeys(level, opts.GroupDesc) {
			child, _ := tree.Children.Get(key)
			p.Groups = append(p.Groups, GroupSummary{Label: key, Count: child.Count()})
		}
	}

	p.Rows = collectRows(tree, opts, nil)
	return p
}

// collectRows flattens the tree into preview rows in display order,
// threading the ancestor label path down the recursion.
func collectRows(n *Node, opts Options, path []string) []Row {
	if n.IsLeaf() {
		rows := make([]Row, 0, len(n.Events))
		for _, e := range n.Events {
			timeLabel := ""
			if !e.Start.IsZero() {
				timeLabel = e.Start.Format("3:04 PM")
			}
			rows = append(rows, Row{
				DateLabel:       e.StartDate().Format("Jan 2, 2006"),
				Client:          event.ClientName(e.Title),
				Service:         event.ServiceType(e),
				DurationMinutes: event.ServiceMinutes(e),
				TimeLabel:       timeLabel,
				Location:        e.Location,
				GroupPath:       append([]string(nil), path...),
			})
		}
		return rows
	}

	level := opts.GroupBy[len(path)]
	var rows []Row
	for _, key := range n.SortedKeys(level, opts.GroupDesc) {
		child, _ := n.Children.Get(key)
		rows = append(rows, collectRows(child, opts, append(path, key))...)
	}
	return rows
}
