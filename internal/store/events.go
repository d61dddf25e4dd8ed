package store

import (
	"database/sql"
	"fmt"
	"time"

	"pawsched/internal/event"
)

const eventColumns = `id, title, start_time, end_time, location, notes, all_day, ignored, type, work_event`

// InsertEvent inserts a new event row. The caller supplies the ID.
func (db *DB) InsertEvent(e *event.Event) error {
	_, err := db.Exec(
		`INSERT INTO events (id, title, start_time, end_time, location, notes, all_day, ignored, type, work_event)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title,
		e.Start.UTC().Format(time.RFC3339),
		e.End.UTC().Format(time.RFC3339),
		e.Location, e.Notes, e.AllDay, e.Ignored, string(e.Type), workEventValue(e),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// UpsertEvent inserts or replaces an event keyed by its source ID. Sync
// paths use this so re-pulling a calendar is idempotent.
func (db *DB) UpsertEvent(e *event.Event, source string) error {
	_, err := db.Exec(
		`INSERT INTO events (id, title, start_time, end_time, location, notes, all_day, ignored, type, work_event, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			location = excluded.location,
			notes = excluded.notes,
			all_day = excluded.all_day,
			type = excluded.type,
			updated_at = CURRENT_TIMESTAMP`,
		e.ID, e.Title,
		e.Start.UTC().Format(time.RFC3339),
		e.End.UTC().Format(time.RFC3339),
		e.Location, e.Notes, e.AllDay, e.Ignored, string(e.Type), workEventValue(e), source,
	)
	if err != nil {
		return fmt.Errorf("upserting event: %w", err)
	}
	return nil
}

// SetIgnored flags or unflags an event for exclusion from workload and
// exports.
func (db *DB) SetIgnored(id string, ignored bool) error {
	res, err := db.Exec("UPDATE events SET ignored = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", ignored, id)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no event with id %s", id)
	}
	return nil
}

// SetWorkEvent pins the cached classification for an event, overriding the
// title heuristics.
func (db *DB) SetWorkEvent(id string, work bool) error {
	_, err := db.Exec("UPDATE events SET work_event = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", work, id)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return nil
}

func (db *DB) DeleteEvent(id string) error {
	res, err := db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no event with id %s", id)
	}
	return nil
}

// GetEvent returns the event with the given ID, or nil when absent.
func (db *DB) GetEvent(id string) (*event.Event, error) {
	events, err := db.queryEvents(
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id,
	)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// EventsInRange returns events starting within [from, to), ordered by start
// time. Zero bounds are unbounded.
func (db *DB) EventsInRange(from, to time.Time) ([]event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var args []any
	switch {
	case !from.IsZero() && !to.IsZero():
		query += ` WHERE start_time >= ? AND start_time < ?`
		args = append(args, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	case !from.IsZero():
		query += ` WHERE start_time >= ?`
		args = append(args, from.UTC().Format(time.RFC3339))
	case !to.IsZero():
		query += ` WHERE start_time < ?`
		args = append(args, to.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY start_time ASC`
	return db.queryEvents(query, args...)
}

// AllEvents returns every stored event ordered by start time.
func (db *DB) AllEvents() ([]event.Event, error) {
	return db.queryEvents(`SELECT ` + eventColumns + ` FROM events ORDER BY start_time ASC`)
}

func (db *DB) queryEvents(query string, args ...any) ([]event.Event, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var e event.Event
		var location, notes sql.NullString
		var typ string
		var startStr, endStr string
		var workEvent sql.NullBool

		if err := rows.Scan(
			&e.ID, &e.Title, &startStr, &endStr, &location, &notes,
			&e.AllDay, &e.Ignored, &typ, &workEvent,
		); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}

		e.Location = location.String
		e.Notes = notes.String
		e.Type = event.Type(typ)
		if workEvent.Valid {
			v := workEvent.Bool
			e.WorkEvent = &v
		}

		// Timestamps are stored in UTC. Consumers key on calendar days and
		// clock times, so convert back to local on the way out.
		if t, err := time.Parse(time.RFC3339, startStr); err == nil {
			e.Start = t.Local()
		}
		if t, err := time.Parse(time.RFC3339, endStr); err == nil {
			e.End = t.Local()
		}

		events = append(events, e)
	}

	return events, rows.Err()
}

func workEventValue(e *event.Event) any {
	if e.WorkEvent == nil {
		return nil
	}
	return *e.WorkEvent
}
