package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"scbank/internal/settings"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "scbank.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestPreferencesRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, found, err := repo.Load(ctx); err != nil || found {
		t.Fatalf("Load() on empty db = found %v, err %v", found, err)
	}

	want := settings.Settings{Theme: settings.ThemeDark, Language: "sv", Currency: "SEK", NotificationsEnabled: true}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, found, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("Load() found = false after save")
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestPreferencesUpsertKeepsSingleRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := settings.Settings{Theme: settings.ThemeLight, Currency: "USD"}
	second := settings.Settings{Theme: settings.ThemeDark, Currency: "EUR", NotificationsEnabled: true}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, _, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != second {
		t.Errorf("Load() = %+v, want the second save %+v", got, second)
	}
}

func TestAuditAppendAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	occurred := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id, err := repo.AppendAudit(ctx, AuditEntry{
		SessionID:  "sess-1",
		Event:      "session.started",
		Detail:     "",
		OccurredAt: occurred,
	})
	if err != nil {
		t.Fatalf("AppendAudit: %v", err)
	}
	if id == 0 {
		t.Fatal("AppendAudit returned id 0")
	}

	got, err := repo.GetAuditEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetAuditEntry: %v", err)
	}
	if got.SessionID != "sess-1" || got.Event != "session.started" {
		t.Errorf("GetAuditEntry() = %+v", got)
	}
	if !got.OccurredAt.Equal(occurred) {
		t.Errorf("OccurredAt = %v, want %v", got.OccurredAt, occurred)
	}

	if _, err := repo.GetAuditEntry(ctx, id+1000); err == nil {
		t.Error("expected error for missing entry")
	}
}

func TestRecentAuditNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	events := []string{"session.started", "login.succeeded", "view.opened"}
	for _, event := range events {
		if _, err := repo.AppendAudit(ctx, AuditEntry{
			SessionID: "sess-1", Event: event, OccurredAt: time.Now(),
		}); err != nil {
			t.Fatalf("AppendAudit(%s): %v", event, err)
		}
	}

	entries, err := repo.RecentAudit(ctx, 2)
	if err != nil {
		t.Fatalf("RecentAudit: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Event != "view.opened" || entries[1].Event != "login.succeeded" {
		t.Errorf("order = %s, %s; want newest first", entries[0].Event, entries[1].Event)
	}
}
