package storage

import (
	"errors"
	"sync"

	"github.com/mertakman/go-sessionsense/pkg/models"
)

// MemoryStore keeps session records in RAM behind an RWMutex. Handlers
// analyze concurrently, so reads and writes must be safe; records vanish
// with the process, which is exactly the intended lifetime.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*models.SessionRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*models.SessionRecord),
	}
}

// GetLastRecord returns the stored record for a session. A missing session
// is not an error; the engine treats nil as "first analysis".
func (m *MemoryStore) GetLastRecord(sessionID string) (*models.SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if record, exists := m.data[sessionID]; exists {
		cp := *record
		return &cp, nil
	}
	return nil, nil
}

// SaveRecord stores a copy of the record as the session's latest analysis.
func (m *MemoryStore) SaveRecord(record *models.SessionRecord) error {
	if record == nil {
		return errors.New("record must not be nil")
	}
	if record.SessionID == "" {
		return errors.New("record is missing a session id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *record
	m.data[record.SessionID] = &cp
	return nil
}
