package amqp

import (
	"encoding/json"
	"time"
)

// AuditSyncMessage asks the worker to mirror one audit entry. It carries
// only the row id; the worker fetches the full entry from the database.
type AuditSyncMessage struct {
	EntryID   int64     `json:"entry_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewAuditSyncMessage(entryID int64) *AuditSyncMessage {
	return &AuditSyncMessage{
		EntryID:   entryID,
		Timestamp: time.Now(),
	}
}

func (m *AuditSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AuditSyncMessageFromJSON(data []byte) (*AuditSyncMessage, error) {
	var msg AuditSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
