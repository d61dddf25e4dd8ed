// Package stats aggregates classified events into the workload and revenue
// summaries behind the dashboard views.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pawsched/internal/config"
	"pawsched/internal/event"
	"pawsched/internal/export"
)

// ClientTotal is one client's line in the summary, ordered by visit count.
type ClientTotal struct {
	Name    string
	Visits  int
	Minutes int
}

// Summary aggregates work events over a date range.
type Summary struct {
	From, To time.Time

	Visits          int
	WorkMinutes     int
	OvernightNights int
	DistinctClients int
	PersonalSkipped int

	Clients    []ClientTotal
	ServiceMix map[string]int
	WeekdayMix [7]int

	BusiestDay      time.Time
	BusiestDayCount int

	RevenueEstimate int
}

// Compute builds a Summary from raw events. Personal events, ignored
// entries, all-day padding, and end-of-overnight markers are excluded the
// same way exports exclude them; the count of personal-vetoed titles is
// kept for the dashboard's breakdown.
func Compute(events []event.Event, from, to time.Time, rates config.RatesConfig) Summary {
	s := Summary{
		From:       from,
		To:         to,
		ServiceMix: make(map[string]int),
	}

	opts := export.Options{StartDate: from, EndDate: to}
	inRange := export.Filter(events, opts)
	for _, e := range inRange {
		if !e.IsWork() {
			if event.MatchedPersonalRule(e.Title) != "" {
				s.PersonalSkipped++
			}
			continue
		}

		s.Visits++
		s.WorkMinutes += event.ServiceMinutes(e)
		s.WeekdayMix[int(e.Start.Weekday())]++

		svc := event.ServiceType(e)
		if event.IsOvernight(e) {
			nights := event.Nights(e)
			s.OvernightNights += nights
			svc = "Overnight"
			s.RevenueEstimate += nights * rates.Overnight
		} else {
			s.RevenueEstimate += serviceRate(e, rates)
		}
		s.ServiceMix[svc]++
	}

	s.Clients = clientTotals(inRange)
	s.DistinctClients = len(s.Clients)
	s.BusiestDay, s.BusiestDayCount = busiestDay(inRange)
	return s
}

func serviceRate(e event.Event, rates config.RatesConfig) int {
	title := e.Title
	switch {
	case strings.Contains(strings.ToLower(title), "nail trim"):
		return rates.NailTrim
	case e.Type == event.TypeWalk:
		return rates.Walk
	}
	switch event.ServiceMinutes(e) {
	case 15:
		return rates.DropIn15
	case 20:
		return rates.DropIn15
	case 30:
		return rates.DropIn30
	case 45:
		return rates.DropIn45
	case 60:
		return rates.DropIn60
	}
	if event.ServiceType(e) == "Meet & Greet" {
		return rates.MeetGreet
	}
	return rates.DropIn30
}

func clientTotals(events []event.Event) []ClientTotal {
	byName := make(map[string]*ClientTotal)
	for _, e := range events {
		if !e.IsWork() {
			continue
		}
		name := event.ClientName(e.Title)
		if name == "" {
			name = "Unknown"
		}
		ct, ok := byName[name]
		if !ok {
			ct = &ClientTotal{Name: name}
			byName[name] = ct
		}
		ct.Visits++
		ct.Minutes += event.ServiceMinutes(e)
	}

	totals := make([]ClientTotal, 0, len(byName))
	for _, ct := range byName {
		totals = append(totals, *ct)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Visits != totals[j].Visits {
			return totals[i].Visits > totals[j].Visits
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

func busiestDay(events []event.Event) (time.Time, int) {
	counts := make(map[time.Time]int)
	for _, e := range events {
		if !e.IsWork() {
			continue
		}
		counts[e.StartDate()]++
	}

	var best time.Time
	bestCount := 0
	for day, n := range counts {
		if n > bestCount || (n == bestCount && day.Before(best)) {
			best, bestCount = day, n
		}
	}
	return best, bestCount
}

// Render formats the summary for terminal display.
func Render(s Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Workload %s to %s\n\n",
		s.From.Format("Jan 2, 2006"), s.To.Format("Jan 2, 2006"))

	hours := s.WorkMinutes / 60
	mins := s.WorkMinutes % 60
	fmt.Fprintf(&sb, "  Visits:           %d\n", s.Visits)
	fmt.Fprintf(&sb, "  Work time:        %dh %dmin\n", hours, mins)
	fmt.Fprintf(&sb, "  Overnight nights: %d\n", s.OvernightNights)
	fmt.Fprintf(&sb, "  Clients:          %d\n", s.DistinctClients)
	fmt.Fprintf(&sb, "  Est. revenue:     $%d\n", s.RevenueEstimate)
	if s.PersonalSkipped > 0 {
		fmt.Fprintf(&sb, "  Personal skipped: %d\n", s.PersonalSkipped)
	}
	if s.BusiestDayCount > 0 {
		fmt.Fprintf(&sb, "  Busiest day:      %s (%d visits)\n",
			s.BusiestDay.Format("Mon, Jan 2"), s.BusiestDayCount)
	}

	if len(s.ServiceMix) > 0 {
		sb.WriteString("\nService mix:\n")
		services := make([]string, 0, len(s.ServiceMix))
		for svc := range s.ServiceMix {
			services = append(services, svc)
		}
		sort.Strings(services)
		for _, svc := range services {
			fmt.Fprintf(&sb, "  %-20s %d\n", svc, s.ServiceMix[svc])
		}
	}

	if len(s.Clients) > 0 {
		sb.WriteString("\nTop clients:\n")
		top := s.Clients
		if len(top) > 10 {
			top = top[:10]
		}
		for _, c := range top {
			fmt.Fprintf(&sb, "  %-20s %3d visits  %4dmin\n", c.Name, c.Visits, c.Minutes)
		}
	}

	return sb.String()
}
