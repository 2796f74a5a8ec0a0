// Package cache persists the last successful fetch to SQLite so the CLI can
// render a stale-but-usable view when the backend is unreachable.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tbonnaire/apptrack/internal/types"
	_ "modernc.org/sqlite"
)

// ErrEmpty is returned by Load when no snapshot has been saved yet.
var ErrEmpty = fmt.Errorf("cache is empty")

// Cache wraps a SQLite connection holding one snapshot.
type Cache struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) the snapshot database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	if _, err := conn.Exec(Schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Cache{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// DefaultPath returns the per-user snapshot location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".apptrack", "cache.db")
	}
	return filepath.Join(dir, "apptrack", "cache.db")
}

// Save replaces the stored snapshot with the given records in one
// transaction. fetchedAt is an ISO 8601 timestamp.
func (c *Cache) Save(apps []types.ApplicationRecord, emails []types.EmailRecord, fetchedAt string) error {
	tx, err := c.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM applications"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM emails"); err != nil {
		return err
	}

	for i, a := range apps {
		_, err := tx.Exec(`
			INSERT INTO applications
				(id, company_name, job_title, status, priority, source, location,
				 contact_person, notes, applied_date, last_update_date, interview_date,
				 urgency_level, auto_created, created_at, updated_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.CompanyName, a.JobTitle, a.Status, nullStr(a.Priority),
			nullStr(a.Source), nullStr(a.Location), nullStr(a.ContactPerson),
			nullStr(a.Notes), nullStr(a.AppliedDate), nullStr(a.LastUpdateDate),
			nullStr(a.InterviewDate), nullStr(a.UrgencyLevel), nullBool(a.AutoCreated),
			nullStr(a.CreatedAt), nullStr(a.UpdatedAt), i,
		)
		if err != nil {
			return err
		}
	}

	for i, e := range emails {
		_, err := tx.Exec(`
			INSERT INTO emails
				(id, subject, sender, sent_at, classification, application_id, snippet, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Subject, nullStr(e.Sender), nullStr(e.SentAt),
			nullStr(e.Classification), nullStr(e.ApplicationID), nullStr(e.Snippet), i,
		)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO meta (key, value) VALUES ('fetched_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, fetchedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// Load returns the stored snapshot and when it was fetched.
func (c *Cache) Load() ([]types.ApplicationRecord, []types.EmailRecord, time.Time, error) {
	var stamp string
	err := c.conn.QueryRow("SELECT value FROM meta WHERE key = 'fetched_at'").Scan(&stamp)
	if err == sql.ErrNoRows {
		return nil, nil, time.Time{}, ErrEmpty
	}
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	fetchedAt, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("parse fetched_at: %w", err)
	}

	apps, err := c.loadApplications()
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	emails, err := c.loadEmails()
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	return apps, emails, fetchedAt, nil
}

func (c *Cache) loadApplications() ([]types.ApplicationRecord, error) {
	rows, err := c.conn.Query(`
		SELECT id, company_name, job_title, status, priority, source, location,
		       contact_person, notes, applied_date, last_update_date, interview_date,
		       urgency_level, auto_created, created_at, updated_at
		FROM applications
		ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []types.ApplicationRecord
	for rows.Next() {
		var a types.ApplicationRecord
		var priority, source, location, contact, notes sql.NullString
		var applied, lastUpdate, interview, urgency, createdAt, updatedAt sql.NullString
		var auto sql.NullBool
		if err := rows.Scan(
			&a.ID, &a.CompanyName, &a.JobTitle, &a.Status, &priority, &source,
			&location, &contact, &notes, &applied, &lastUpdate, &interview,
			&urgency, &auto, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		a.Priority = priority.String
		a.Source = source.String
		a.Location = location.String
		a.ContactPerson = contact.String
		a.Notes = notes.String
		a.AppliedDate = applied.String
		a.LastUpdateDate = lastUpdate.String
		a.InterviewDate = interview.String
		a.UrgencyLevel = urgency.String
		a.CreatedAt = createdAt.String
		a.UpdatedAt = updatedAt.String
		if auto.Valid {
			v := auto.Bool
			a.AutoCreated = &v
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (c *Cache) loadEmails() ([]types.EmailRecord, error) {
	rows, err := c.conn.Query(`
		SELECT id, subject, sender, sent_at, classification, application_id, snippet
		FROM emails
		ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []types.EmailRecord
	for rows.Next() {
		var e types.EmailRecord
		var sender, sentAt, classification, appID, snippet sql.NullString
		if err := rows.Scan(&e.ID, &e.Subject, &sender, &sentAt, &classification, &appID, &snippet); err != nil {
			return nil, err
		}
		e.Sender = sender.String
		e.SentAt = sentAt.String
		e.Classification = classification.String
		e.ApplicationID = appID.String
		e.Snippet = snippet.String
		result = append(result, e)
	}
	return result, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
