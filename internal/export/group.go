package export

import (
	"sort"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"pawsched/internal/event"
)

// GroupLevel is one dimension in a multi-level grouping specification.
type GroupLevel string

const (
	GroupDate    GroupLevel = "date"
	GroupWeek    GroupLevel = "week"
	GroupMonth   GroupLevel = "month"
	GroupClient  GroupLevel = "client"
	GroupService GroupLevel = "service"
)

// Label layouts for the date-like group keys. Sorting parses the label back
// into a time, so key derivation and key ordering must agree on these.
const (
	dateKeyLayout  = "Mon, Jan 2, 2006"
	monthKeyLayout = "January 2006"
	weekKeyPrefix  = "Week of "
)

// Node is one node of the group tree: either a leaf holding an ordered
// event list, or a branch holding child nodes keyed by group label in
// discovery order. Exactly one of Events/Children is set.
type Node struct {
	Events   []event.Event
	Children *orderedmap.OrderedMap[string, *Node]
}

// IsLeaf reports whether the node holds events directly.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Count returns the total number of events under the node, counting leaves
// recursively. Branch headers always show the deep total, not the number of
// immediate children.
func (n *Node) Count() int {
	if n.IsLeaf() {
		return len(n.Events)
	}
	total := 0
	for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
		total += pair.Value.Count()
	}
	return total
}

// Build recursively partitions events into a group tree, consuming one
// level per recursion step. Bucket order within a branch is the order keys
// are first seen, which keeps the build stable; display ordering is applied
// separately by SortedKeys.
func Build(events []event.Event, levels []GroupLevel) *Node {
	if len(levels) == 0 {
		return &Node{Events: events}
	}

	children := orderedmap.New[string, *Node]()
	buckets := orderedmap.New[string, []event.Event]()
	for _, e := range events {
		key := GroupKey(e, levels[0])
		cur, _ := buckets.Get(key)
		buckets.Set(key, append(cur, e))
	}
	for pair := buckets.Oldest(); pair != nil; pair = pair.Next() {
		children.Set(pair.Key, Build(pair.Value, levels[1:]))
	}
	return &Node{Children: children}
}

// GroupKey derives the bucket label for an event at one grouping level.
// Unrecognized levels bucket under a literal "Unknown" rather than failing.
func GroupKey(e event.Event, level GroupLevel) string {
	switch level {
	case GroupDate:
		return e.StartDate().Format(dateKeyLayout)
	case GroupWeek:
		return weekKeyPrefix + weekStart(e.Start).Format("Jan 2, 2006")
	case GroupMonth:
		return e.StartDate().Format(monthKeyLayout)
	case GroupClient:
		if name := event.ClientName(e.Title); name != "" {
			return name
		}
		return "Unknown"
	case GroupService:
		return event.ServiceType(e)
	}
	return "Unknown"
}

// weekStart returns midnight of the Sunday starting the week containing t.
func weekStart(t time.Time) time.Time {
	d := event.Midnight(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// SortedKeys returns the node's child keys in display order: date-like keys
// chronologically by parsing the label back into a time (alphabetical order
// would put "Nov 2025" before "Feb 2025"), name-like keys alphabetically.
// desc reverses the order uniformly.
func (n *Node) SortedKeys(level GroupLevel, desc bool) []string {
	if n.IsLeaf() {
		return nil
	}
	keys := make([]string, 0, n.Children.Len())
	for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	switch level {
	case GroupDate, GroupWeek, GroupMonth:
		sort.SliceStable(keys, func(i, j int) bool {
			return keyTime(keys[i], level).Before(keyTime(keys[j], level))
		})
	default:
		sort.SliceStable(keys, func(i, j int) bool {
			return compareFold(keys[i], keys[j]) < 0
		})
	}

	if desc {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	return keys
}

// keyTime parses a date-like group label back into a time. Unparseable
// labels (the "Unknown" bucket) sort last.
func keyTime(key string, level GroupLevel) time.Time {
	var t time.Time
	var err error
	switch level {
	case GroupDate:
		t, err = time.Parse(dateKeyLayout, key)
	case GroupWeek:
		t, err = time.Parse("Jan 2, 2006", strings.TrimPrefix(key, weekKeyPrefix))
	case GroupMonth:
		t, err = time.Parse(monthKeyLayout, key)
	}
	if err != nil {
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return t
}
