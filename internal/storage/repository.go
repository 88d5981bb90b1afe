// Package storage persists the little server-side state the demo keeps
// between visits: the user preferences and the session audit trail. Both
// live in a single SQLite file managed by embedded migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"scbank/internal/settings"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements settings.Persister. The second return is false on a first
// visit, before anything was saved.
func (r *SQLiteRepository) Load(ctx context.Context) (settings.Settings, bool, error) {
	var (
		s             settings.Settings
		theme         string
		notifications int64
	)
	row := r.db.QueryRowContext(ctx,
		`SELECT theme, language, currency, notifications_enabled FROM preferences WHERE id = 1`)
	if err := row.Scan(&theme, &s.Language, &s.Currency, &notifications); err != nil {
		if err == sql.ErrNoRows {
			return settings.Settings{}, false, nil
		}
		return settings.Settings{}, false, fmt.Errorf("load preferences: %w", err)
	}
	s.Theme = settings.Theme(theme)
	s.NotificationsEnabled = notifications != 0
	return s, true, nil
}

// Save implements settings.Persister with a single-row upsert.
func (r *SQLiteRepository) Save(ctx context.Context, s settings.Settings) error {
	notifications := 0
	if s.NotificationsEnabled {
		notifications = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (id, theme, language, currency, notifications_enabled, updated_at)
		 VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   theme = excluded.theme,
		   language = excluded.language,
		   currency = excluded.currency,
		   notifications_enabled = excluded.notifications_enabled,
		   updated_at = CURRENT_TIMESTAMP`,
		string(s.Theme), s.Language, s.Currency, notifications)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	slog.InfoContext(ctx, "Preferences saved",
		"theme", s.Theme,
		"currency", s.Currency,
		"notifications_enabled", s.NotificationsEnabled)
	return nil
}

// AuditEntry is one recorded session event.
type AuditEntry struct {
	ID         int64
	SessionID  string
	Event      string
	Detail     string
	OccurredAt time.Time
}

// AppendAudit records a session event.
func (r *SQLiteRepository) AppendAudit(ctx context.Context, e AuditEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (session_id, event, detail, occurred_at) VALUES (?, ?, ?, ?)`,
		e.SessionID, e.Event, e.Detail, e.OccurredAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("append audit entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("audit entry id: %w", err)
	}

	slog.InfoContext(ctx, "Audit entry saved",
		"id", id,
		"session_id", e.SessionID,
		"event", e.Event)
	return id, nil
}

// GetAuditEntry fetches one entry by id. The worker uses it to resolve the
// lightweight queue messages.
func (r *SQLiteRepository) GetAuditEntry(ctx context.Context, id int64) (AuditEntry, error) {
	var e AuditEntry
	row := r.db.QueryRowContext(ctx,
		`SELECT id, session_id, event, detail, occurred_at FROM audit_log WHERE id = ?`, id)
	if err := row.Scan(&e.ID, &e.SessionID, &e.Event, &e.Detail, &e.OccurredAt); err != nil {
		return AuditEntry{}, fmt.Errorf("get audit entry %d: %w", id, err)
	}
	return e, nil
}

// RecentAudit returns the newest entries, newest first.
func (r *SQLiteRepository) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, event, detail, occurred_at
		 FROM audit_log ORDER BY id DESC LIMIT ?`, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Event, &e.Detail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
