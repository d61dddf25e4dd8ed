// Package gcal pulls Google Calendar events into the local event model
// using the installed-app OAuth flow.
package gcal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"pawsched/internal/event"
)

// Client wraps a Calendar API service for one calendar.
type Client struct {
	service    *calendar.Service
	calendarID string
	logger     *slog.Logger
}

// OAuthConfig builds the oauth2 config for the installed-app flow. The
// out-of-band style redirect has the user paste the code back into the
// terminal.
func OAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost",
		Scopes:       []string{calendar.CalendarReadonlyScope},
	}
}

// Authorize runs the code-exchange half of the flow: the caller prints
// cfg.AuthCodeURL, collects the code, and passes it here. The resulting
// token is persisted for later runs.
func Authorize(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	if err := SaveToken(token); err != nil {
		return nil, fmt.Errorf("saving token: %w", err)
	}
	return token, nil
}

// NewClient creates a calendar client from a previously saved token. The
// token source refreshes automatically; refreshed tokens are persisted on a
// best-effort basis at fetch time.
func NewClient(ctx context.Context, cfg *oauth2.Config, calendarID string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	token, err := LoadToken()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("no saved Google credentials, run 'pawsched sync --auth' first")
	}

	service, err := calendar.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	return &Client{
		service:    service,
		calendarID: calendarID,
		logger:     logger,
	}, nil
}

// Fetch returns the calendar's events within [from, to), expanded to single
// instances. Events the API cannot express as timed entries come back as
// all-day records.
func (c *Client) Fetch(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	c.logger.Debug("fetching calendar events",
		"calendar", c.calendarID,
		"from", from.Format(time.RFC3339),
		"to", to.Format(time.RFC3339))

	var events []event.Event
	pageToken := ""
	for {
		call := c.service.Events.List(c.calendarID).
			Context(ctx).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(250)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("listing calendar events: %w", err)
		}

		for _, item := range resp.Items {
			ev, ok := convert(item)
			if !ok {
				c.logger.Debug("skipping unconvertible event", "id", item.Id, "summary", item.Summary)
				continue
			}
			events = append(events, ev)
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	c.logger.Debug("fetched calendar events", "count", len(events))
	return events, nil
}

func convert(item *calendar.Event) (event.Event, bool) {
	if item.Summary == "" || item.Start == nil || item.End == nil {
		return event.Event{}, false
	}

	ev := event.Event{
		ID:       "gcal:" + item.Id,
		Title:    item.Summary,
		Location: item.Location,
		Notes:    item.Description,
	}

	if item.Start.DateTime != "" {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return event.Event{}, false
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return event.Event{}, false
		}
		ev.Start, ev.End = start, end
		return ev, true
	}

	// Date-only entries are all-day events; End.Date is exclusive.
	start, err := time.Parse("2006-01-02", item.Start.Date)
	if err != nil {
		return event.Event{}, false
	}
	end, err := time.Parse("2006-01-02", item.End.Date)
	if err != nil {
		return event.Event{}, false
	}
	ev.Start, ev.End = start, end
	ev.AllDay = true
	return ev, true
}
