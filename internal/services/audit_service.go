package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"scbank/internal/amqp"
	"scbank/internal/storage"
)

// Audit event names recorded over a session's lifetime.
const (
	AuditSessionStarted = "session.started"
	AuditLoginSucceeded = "login.succeeded"
	AuditLogout         = "logout"
	AuditViewOpened     = "view.opened"
	AuditTransferSent   = "transfer.sent"
	AuditExportCreated  = "export.created"
	AuditSettingsSaved  = "settings.saved"
)

// AuditService records session events locally and queues them for the
// mirror worker.
type AuditService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewAuditService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *AuditService {
	return &AuditService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Record saves an event and publishes a mirror message. The publish is best
// effort; the local write is what matters.
func (s *AuditService) Record(ctx context.Context, sessionID, event, detail string) error {
	if s == nil || s.storage == nil {
		return nil
	}
	id, err := s.storage.AppendAudit(ctx, storage.AuditEntry{
		SessionID:  sessionID,
		Event:      event,
		Detail:     detail,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping mirror message")
		return nil
	}
	if err := s.amqpClient.PublishAuditSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish audit sync message",
			"entry_id", id, "error", err)
	}
	return nil
}

// Recent exposes the newest entries for the alerts view.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]storage.AuditEntry, error) {
	if s == nil || s.storage == nil {
		return nil, nil
	}
	return s.storage.RecentAudit(ctx, limit)
}

// Close closes the AMQP connection. The repository is shared with other
// components and stays open; whoever opened it closes it.
func (s *AuditService) Close() error {
	if s == nil || s.amqpClient == nil {
		return nil
	}
	if err := s.amqpClient.Close(); err != nil {
		return fmt.Errorf("close audit amqp client: %w", err)
	}
	return nil
}
