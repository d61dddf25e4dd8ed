// Package tui renders the interactive month calendar with a per-day agenda
// pane.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pawsched/internal/event"
)

// Loader fetches events overlapping [from, to). The calendar calls it once
// per displayed month.
type Loader func(from, to time.Time) ([]event.Event, error)

type eventsMsg struct {
	events []event.Event
	err    error
}

// App is the bubbletea model for the calendar view.
type App struct {
	loader    Loader
	month     time.Time // first of the displayed month
	selected  time.Time // midnight of the selected day
	today     time.Time
	events    []event.Event
	errMsg    string
	search    textinput.Model
	searching bool
}

func NewApp(loader Loader, now time.Time) *App {
	today := event.Midnight(now)
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "filter titles"
	search.CharLimit = 60
	return &App{
		loader:   loader,
		month:    time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		selected: today,
		today:    today,
		search:   search,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadMonth()
}

// loadMonth fetches the displayed month padded by a week on both sides so
// overnight spans crossing month edges still shade correctly.
func (a *App) loadMonth() tea.Cmd {
	from := a.month.AddDate(0, 0, -7)
	to := a.month.AddDate(0, 1, 7)
	loader := a.loader
	return func() tea.Msg {
		events, err := loader(from, to)
		return eventsMsg{events: events, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.events = msg.events
		return a, nil

	case tea.KeyMsg:
		if a.searching {
			switch msg.String() {
			case "enter":
				a.searching = false
				a.search.Blur()
				return a, nil
			case "esc":
				a.searching = false
				a.search.SetValue("")
				a.search.Blur()
				return a, nil
			}
			var cmd tea.Cmd
			a.search, cmd = a.search.Update(msg)
			return a, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "esc":
			if a.search.Value() != "" {
				a.search.SetValue("")
				return a, nil
			}
			return a, tea.Quit
		case "/":
			a.searching = true
			return a, a.search.Focus()
		case "left", "h":
			return a.moveSelection(-1)
		case "right", "l":
			return a.moveSelection(1)
		case "up", "k":
			return a.moveSelection(-7)
		case "down", "j":
			return a.moveSelection(7)
		case "[", "pgup":
			return a.changeMonth(-1)
		case "]", "pgdown":
			return a.changeMonth(1)
		case "t":
			a.selected = a.today
			a.month = time.Date(a.today.Year(), a.today.Month(), 1, 0, 0, 0, 0, a.today.Location())
			return a, a.loadMonth()
		}
	}
	return a, nil
}

func (a *App) moveSelection(days int) (tea.Model, tea.Cmd) {
	a.selected = a.selected.AddDate(0, 0, days)
	if a.selected.Month() != a.month.Month() || a.selected.Year() != a.month.Year() {
		a.month = time.Date(a.selected.Year(), a.selected.Month(), 1, 0, 0, 0, 0, a.selected.Location())
		return a, a.loadMonth()
	}
	return a, nil
}

func (a *App) changeMonth(delta int) (tea.Model, tea.Cmd) {
	a.month = a.month.AddDate(0, delta, 0)
	a.selected = a.month
	return a, a.loadMonth()
}

func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(a.month.Format("January 2006")))
	sb.WriteString("\n")
	if a.errMsg != "" {
		sb.WriteString(errorStyle.Render("Error: ") + a.errMsg + "\n")
	}

	sb.WriteString(a.renderGrid())
	sb.WriteString("\n")
	sb.WriteString(a.renderAgenda())
	if a.searching || a.search.Value() != "" {
		sb.WriteString(a.search.View() + "\n")
	}
	sb.WriteString(helpStyle.Render("arrows/hjkl move • [/] month • / filter • t today • q quit"))

	return sb.String()
}

func (a *App) renderGrid() string {
	var sb strings.Builder

	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("%5s", wd)))
	}
	sb.WriteString("\n")

	// Grid starts on the Sunday on or before the 1st.
	cursor := a.month.AddDate(0, 0, -int(a.month.Weekday()))
	end := a.month.AddDate(0, 1, 0)

	for cursor.Before(end) || cursor.Weekday() != time.Sunday {
		cell := a.renderDay(cursor)
		sb.WriteString(cell)
		if cursor.Weekday() == time.Saturday {
			sb.WriteString("\n")
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return sb.String()
}

func (a *App) renderDay(day time.Time) string {
	label := fmt.Sprintf("%d", day.Day())
	if n := len(a.eventsOn(day)); n > 0 {
		label = fmt.Sprintf("%d·%d", day.Day(), n)
	}

	style := dayStyle
	switch {
	case event.SameDay(day, a.selected):
		style = selectedStyle
	case event.SameDay(day, a.today):
		style = todayStyle
	case a.hasOvernight(day):
		style = overnightStyle
	case a.hasWork(day):
		style = workDayStyle
	}
	if day.Month() != a.month.Month() {
		style = dimStyle.Width(5).Align(lipgloss.Right)
	}
	return style.Render(label)
}

// eventsOn returns the events shown on a day: timed events on their start
// date, overnight spans on every covered date. The title filter, when set,
// narrows both the grid badges and the agenda.
func (a *App) eventsOn(day time.Time) []event.Event {
	term := strings.ToLower(strings.TrimSpace(a.search.Value()))
	var out []event.Event
	for _, e := range a.events {
		if e.Ignored || e.AllDay {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(e.Title), term) {
			continue
		}
		if event.CoversDay(e, day) {
			out = append(out, e)
		}
	}
	return out
}

func (a *App) hasWork(day time.Time) bool {
	for _, e := range a.eventsOn(day) {
		if e.IsWork() {
			return true
		}
	}
	return false
}

func (a *App) hasOvernight(day time.Time) bool {
	for _, e := range a.eventsOn(day) {
		if event.IsOvernight(e) && e.IsWork() {
			return true
		}
	}
	return false
}

func (a *App) renderAgenda() string {
	events := a.eventsOn(a.selected)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(a.selected.Format("Mon, Jan 2, 2006")))
	sb.WriteString("\n")

	if len(events) == 0 {
		sb.WriteString(dimStyle.Render("No appointments") + "\n")
		return boxStyle.Render(strings.TrimRight(sb.String(), "\n")) + "\n"
	}

	for _, e := range events {
		name := event.ClientName(e.Title)
		if name == "" {
			name = e.Title
		}
		line := fmt.Sprintf("%s  %-16s %s",
			e.Start.Format("3:04 PM"), name, event.ServiceType(e))
		if event.IsOvernight(e) && !event.SameDay(e.Start, a.selected) {
			line = fmt.Sprintf("%8s  %-16s %s", "(cont.)", name, event.ServiceType(e))
		}
		if !e.IsWork() {
			line = dimStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	return boxStyle.Render(strings.TrimRight(sb.String(), "\n")) + "\n"
}
