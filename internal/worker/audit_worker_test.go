package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"scbank/internal/amqp"
	"scbank/internal/sheets/memory"
	"scbank/internal/storage"
)

func newTestWorker(t *testing.T) (*AuditWorker, *storage.SQLiteRepository, *memory.Mirror) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "scbank.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	mirror := memory.New()
	return NewAuditWorker(repo, mirror), repo, mirror
}

func TestHandleSyncMessage(t *testing.T) {
	w, repo, mirror := newTestWorker(t)
	ctx := context.Background()

	id, err := repo.AppendAudit(ctx, storage.AuditEntry{
		SessionID: "sess-1", Event: "export.created",
		Detail: "scb-transactions-2025-06-01T12-00-00Z.csv", OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("AppendAudit: %v", err)
	}

	if err := w.HandleSyncMessage(ctx, amqp.NewAuditSyncMessage(id)); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	entries := mirror.Entries()
	if len(entries) != 1 {
		t.Fatalf("mirrored entries = %d, want 1", len(entries))
	}
	if entries[0].ID != id || entries[0].Event != "export.created" {
		t.Errorf("mirrored entry = %+v", entries[0])
	}
}

func TestHandleSyncMessageMissingEntry(t *testing.T) {
	w, _, mirror := newTestWorker(t)

	if err := w.HandleSyncMessage(context.Background(), amqp.NewAuditSyncMessage(42)); err == nil {
		t.Fatal("expected error for unknown entry id")
	}
	if len(mirror.Entries()) != 0 {
		t.Error("nothing should be mirrored for a failed lookup")
	}
}

func TestStartupSyncCheck(t *testing.T) {
	w, repo, mirror := newTestWorker(t)
	ctx := context.Background()

	for _, event := range []string{"session.started", "login.succeeded", "logout"} {
		if _, err := repo.AppendAudit(ctx, storage.AuditEntry{
			SessionID: "sess-1", Event: event, OccurredAt: time.Now(),
		}); err != nil {
			t.Fatalf("AppendAudit(%s): %v", event, err)
		}
	}

	if err := w.StartupSyncCheck(ctx, 2); err != nil {
		t.Fatalf("StartupSyncCheck: %v", err)
	}
	if got := len(mirror.Entries()); got != 2 {
		t.Errorf("mirrored = %d, want batch size 2", got)
	}
}

func TestStartupSyncCheckEmpty(t *testing.T) {
	w, _, _ := newTestWorker(t)
	if err := w.StartupSyncCheck(context.Background(), 10); err != nil {
		t.Fatalf("StartupSyncCheck on empty log: %v", err)
	}
}
