// Package memory is an in-process AuditMirror for development and tests,
// used when no spreadsheet credentials are configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "scbank/internal/sheets"
	"scbank/internal/storage"
)

type Mirror struct {
	mu      sync.Mutex
	entries []storage.AuditEntry
}

var _ ports.AuditMirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{}
}

func (m *Mirror) AppendEntry(ctx context.Context, e storage.AuditEntry) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return fmt.Sprintf("memory!A%d", len(m.entries)), nil
}

// Entries returns a copy of everything appended so far.
func (m *Mirror) Entries() []storage.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storage.AuditEntry(nil), m.entries...)
}
