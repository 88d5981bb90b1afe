package sheets

import (
	"context"

	"scbank/internal/storage"
)

// Ports for outbound adapters.
type (
	// AuditMirror appends audit entries to an external sheet for review.
	AuditMirror interface {
		AppendEntry(ctx context.Context, e storage.AuditEntry) (rowRef string, err error)
	}
)
