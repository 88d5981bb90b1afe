// Package worker mirrors recorded audit entries to the review spreadsheet.
// It consumes the lightweight queue messages, fetches the full entry from
// SQLite and appends it to the sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"scbank/internal/amqp"
	applog "scbank/internal/log"
	"scbank/internal/sheets"
	"scbank/internal/storage"
)

type AuditWorker struct {
	storage *storage.SQLiteRepository
	mirror  sheets.AuditMirror
	logs    *applog.StructuredLogger
}

func NewAuditWorker(storage *storage.SQLiteRepository, mirror sheets.AuditMirror) *AuditWorker {
	logConfig := applog.DefaultConfig()
	logConfig.Component = applog.ComponentWorker
	return &AuditWorker{
		storage: storage,
		mirror:  mirror,
		logs:    applog.NewStructuredLogger(applog.New(logConfig)),
	}
}

// HandleSyncMessage processes one mirror request from the queue.
func (w *AuditWorker) HandleSyncMessage(ctx context.Context, msg *amqp.AuditSyncMessage) error {
	entry, err := w.storage.GetAuditEntry(ctx, msg.EntryID)
	if err != nil {
		return fmt.Errorf("get audit entry from storage: %w", err)
	}

	ref, err := w.mirror.AppendEntry(ctx, entry)
	if err != nil {
		return fmt.Errorf("append to mirror: %w", err)
	}

	w.logs.LogAuditMirrored(ctx, entry.SessionID, entry.Event, ref)
	return nil
}

// StartupSyncCheck re-mirrors the most recent entries at worker startup so
// a downtime window does not leave holes in the sheet.
func (w *AuditWorker) StartupSyncCheck(ctx context.Context, batchSize int) error {
	entries, err := w.storage.RecentAudit(ctx, batchSize)
	if err != nil {
		return fmt.Errorf("get recent entries for startup check: %w", err)
	}
	if len(entries) == 0 {
		slog.InfoContext(ctx, "No audit entries found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Re-mirroring recent audit entries", "count", len(entries))

	errorCount := 0
	for _, entry := range entries {
		if _, err := w.mirror.AppendEntry(ctx, entry); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror entry during startup",
				"entry_id", entry.ID, "error", err)
			errorCount++
		}
	}

	slog.InfoContext(ctx, "Startup mirror completed",
		"total", len(entries),
		"errors", errorCount)
	return nil
}
