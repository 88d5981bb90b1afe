package services

import (
	"context"
	"path/filepath"
	"testing"

	"scbank/internal/storage"
)

func TestAuditServiceRecordAndRecent(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "scbank.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	svc := NewAuditService(repo, nil)
	ctx := context.Background()

	if err := svc.Record(ctx, "sess-1", AuditSessionStarted, ""); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := svc.Record(ctx, "sess-1", AuditLoginSucceeded, ""); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := svc.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Event != AuditLoginSucceeded {
		t.Errorf("newest entry = %q, want %q", entries[0].Event, AuditLoginSucceeded)
	}
}

// The repository is shared with the worker and the settings store; closing
// the audit service must not close it underneath them.
func TestAuditServiceCloseLeavesStorageOpen(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "scbank.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	svc := NewAuditService(repo, nil)
	ctx := context.Background()
	if err := svc.Record(ctx, "sess-1", AuditSessionStarted, ""); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := repo.RecentAudit(ctx, 1); err != nil {
		t.Fatalf("repository unusable after audit close: %v", err)
	}
}

func TestAuditServiceNilSafety(t *testing.T) {
	var svc *AuditService
	if err := svc.Record(context.Background(), "sess-1", AuditLogout, ""); err != nil {
		t.Errorf("nil service Record() = %v, want nil", err)
	}

	detached := NewAuditService(nil, nil)
	if err := detached.Record(context.Background(), "sess-1", AuditLogout, ""); err != nil {
		t.Errorf("storage-less Record() = %v, want nil", err)
	}
}
