package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawsched/internal/event"
)

// With work-only filtering and a November range, "Bella 30"
// is the only line item; "Lunch" is vetoed by the personal rules.
func TestTextWorkOnlyScenario(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC), 30),
		ev("Lunch", time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC), 60),
	}
	opts := Options{
		WorkOnly:  true,
		StartDate: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	}

	out := Text(events, opts)
	assert.Contains(t, out, "Bella")
	assert.NotContains(t, out, "Lunch")
	assert.Contains(t, out, "(1 total)")
}

func TestTextEmptyResultSentinel(t *testing.T) {
	events := []event.Event{ev("Lunch", at(15, 12), 60)}
	out := Text(events, Options{WorkOnly: true})
	assert.Equal(t, NoEventsMessage, out)

	assert.Equal(t, NoEventsMessage, Text(nil, Options{}))
}

func TestTextGroupedHeadersAndCounts(t *testing.T) {
	events := []event.Event{
		ev("Milo 30", at(15, 10), 30),
		ev("Milo 45", at(15, 14), 45),
	}
	opts := Options{
		GroupBy:     []GroupLevel{GroupClient, GroupService},
		IncludeTime: true,
	}

	out := Text(events, opts)
	assert.Contains(t, out, "Milo (2 events)")
	assert.Contains(t, out, "  30-min (1 event)")
	assert.Contains(t, out, "  45-min (1 event)")
}

// Date fields disappear from event lines when an ancestor group level
// already encodes the date.
func TestTextDateOmittedUnderDateGroups(t *testing.T) {
	events := []event.Event{ev("Bella 30", at(15, 10), 30)}

	flat := Text(events, Options{})
	assert.Contains(t, flat, "Nov 15")

	grouped := Text(events, Options{GroupBy: []GroupLevel{GroupDate}})
	lines := strings.Split(grouped, "\n")
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "-") {
			assert.NotContains(t, line, "Nov 15")
		}
	}
}

// An overnight spanning three days shows up under its start date only.
func TestTextOvernightSingleGroup(t *testing.T) {
	events := []event.Event{
		ev("Rocky HS", time.Date(2025, 11, 15, 18, 0, 0, 0, time.UTC), 0),
	}
	events[0].End = time.Date(2025, 11, 17, 9, 0, 0, 0, time.UTC)

	out := Text(events, Options{GroupBy: []GroupLevel{GroupDate}})
	assert.Contains(t, out, "Sat, Nov 15, 2025")
	assert.NotContains(t, out, "Nov 16")
	assert.NotContains(t, out, "Nov 17")
	assert.Contains(t, out, "Overnight (2 nights)")
}

func TestTextExcludesEndMarkersAndIgnored(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", at(15, 10), 30),
		ev("End HS - Rocky", at(15, 9), 0),
		{Title: "Milo 30", Start: at(15, 11), End: at(15, 11).Add(30 * time.Minute), Ignored: true},
	}
	out := Text(events, Options{})
	assert.Contains(t, out, "(1 total)")
	assert.NotContains(t, out, "Rocky")
	assert.NotContains(t, out, "Milo")
}

func TestTextSearchTerm(t *testing.T) {
	events := []event.Event{
		ev("Bella 30", at(15, 10), 30),
		ev("Milo 30", at(15, 11), 30),
	}
	out := Text(events, Options{SearchTerm: "bella"})
	assert.Contains(t, out, "Bella")
	assert.NotContains(t, out, "Milo")
}

// A comma in a client name must survive a round trip through a standard
// CSV parser.
func TestCSVEscaping(t *testing.T) {
	events := []event.Event{
		ev("Smith, Jr. - Bella 30", at(15, 10), 30),
	}
	out := CSV(events, Options{})
	assert.Contains(t, out, `"Smith, Jr."`)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Date", "Time", "Client/Pet", "Service Type", "Duration"}, records[0])
	assert.Equal(t, "Smith, Jr.", records[1][2])
	assert.Equal(t, "30-min", records[1][3])
	assert.Equal(t, "30", records[1][4])
}

func TestCSVLocationColumn(t *testing.T) {
	e := ev("Bella 30", at(15, 10), 30)
	e.Location = "12 Oak St"
	out := CSV([]event.Event{e}, Options{IncludeLocation: true})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Location", records[0][5])
	assert.Equal(t, "12 Oak St", records[1][5])
}

func TestBuildPreview(t *testing.T) {
	events := []event.Event{
		ev("Milo 30", at(15, 10), 30),
		ev("Milo 45", at(15, 14), 45),
		ev("Bella 30", at(16, 10), 30),
	}
	opts := Options{GroupBy: []GroupLevel{GroupClient, GroupService}}

	p := BuildPreview(events, opts)
	assert.Equal(t, 3, p.Count)
	require.Len(t, p.Groups, 2)
	assert.Equal(t, GroupSummary{Label: "Bella", Count: 1}, p.Groups[0])
	assert.Equal(t, GroupSummary{Label: "Milo", Count: 2}, p.Groups[1])

	require.Len(t, p.Rows, 3)
	assert.Equal(t, []string{"Bella", "30-min"}, p.Rows[0].GroupPath)
	assert.Equal(t, "Milo", p.Rows[1].Client)
	assert.NotEmpty(t, p.Text)
	assert.NotEmpty(t, p.CSV)
}

func TestParseGroupBy(t *testing.T) {
	assert.Nil(t, ParseGroupBy("none"))
	assert.Nil(t, ParseGroupBy(""))
	assert.Equal(t, []GroupLevel{GroupClient, GroupService}, ParseGroupBy("client-service"))
	assert.Equal(t, []GroupLevel{GroupWeek, GroupDate}, ParseGroupBy("Week-Date"))
}

func TestParseEventSort(t *testing.T) {
	assert.Equal(t,
		[]SortLevel{{Field: SortClient}, {Field: SortTime, Desc: true}},
		ParseEventSort("client,time:desc"))
	assert.Nil(t, ParseEventSort(""))
}
