// Package notify sends desktop reminders for upcoming appointments.
package notify

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"pawsched/internal/event"
)

// Send shows a desktop notification. Failures are returned, not fatal; a
// missing notification daemon should not break the CLI.
func Send(title, message string) error {
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}

// Upcoming formats the reminder body for one event.
func Upcoming(e event.Event) string {
	name := event.ClientName(e.Title)
	if name == "" {
		name = e.Title
	}
	msg := fmt.Sprintf("%s at %s", event.ServiceType(e), e.Start.Local().Format("3:04 PM"))
	if name != "" {
		msg = name + ": " + msg
	}
	if e.Location != "" {
		msg += " @ " + e.Location
	}
	return msg
}

// Due filters events starting within the lead window from now.
func Due(events []event.Event, now time.Time, lead time.Duration) []event.Event {
	var due []event.Event
	for _, e := range events {
		if e.Ignored || e.AllDay {
			continue
		}
		if !e.Start.Before(now) && e.Start.Sub(now) <= lead {
			due = append(due, e)
		}
	}
	return due
}
