package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Template is a reusable appointment shape. TitlePattern may contain a
// {client} placeholder; RRule, when set, is an iCalendar RRULE string used
// to expand the template into recurring events.
type Template struct {
	ID              int
	Name            string
	TitlePattern    string
	Type            string
	DurationMinutes int
	Location        string
	Notes           string
	RRule           string
	CreatedAt       time.Time
}

func (db *DB) InsertTemplate(t *Template) (int64, error) {
	result, err := db.Exec(
		`INSERT INTO templates (name, title_pattern, type, duration_minutes, location, notes, rrule)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.TitlePattern, t.Type, t.DurationMinutes, t.Location, t.Notes, t.RRule,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting template: %w", err)
	}
	return result.LastInsertId()
}

func (db *DB) DeleteTemplate(name string) error {
	res, err := db.Exec("DELETE FROM templates WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no template named %s", name)
	}
	return nil
}

// GetTemplate returns the template with the given name, or nil when absent.
func (db *DB) GetTemplate(name string) (*Template, error) {
	templates, err := db.queryTemplates(
		`SELECT id, name, title_pattern, type, duration_minutes, location, notes, rrule, created_at
		 FROM templates WHERE name = ?`, name,
	)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, nil
	}
	return &templates[0], nil
}

func (db *DB) ListTemplates() ([]Template, error) {
	return db.queryTemplates(
		`SELECT id, name, title_pattern, type, duration_minutes, location, notes, rrule, created_at
		 FROM templates ORDER BY name ASC`,
	)
}

func (db *DB) queryTemplates(query string, args ...any) ([]Template, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		var t Template
		var location, notes, rrule sql.NullString
		var createdStr string

		if err := rows.Scan(
			&t.ID, &t.Name, &t.TitlePattern, &t.Type, &t.DurationMinutes,
			&location, &notes, &rrule, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}

		t.Location = location.String
		t.Notes = notes.String
		t.RRule = rrule.String
		if ts, err := time.Parse(time.RFC3339, createdStr); err == nil {
			t.CreatedAt = ts
		}

		templates = append(templates, t)
	}

	return templates, rows.Err()
}
