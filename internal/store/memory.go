package store

import (
	"sync"

	"github.com/sweeney/ups-trap-monitor/internal/alarm"
)

// MemoryStore is an in-memory Store for tests and for running without a
// writable filesystem. State does not survive a restart.
type MemoryStore struct {
	mu     sync.Mutex
	muted  bool
	alarms map[string]alarm.Active

	// FailWrites, if set, is returned by every write. Reads still work,
	// modeling a full or read-only disk.
	FailWrites error

	// FailReads, if set, is returned by every load, modeling a corrupt
	// or unreadable state file.
	FailReads error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{alarms: make(map[string]alarm.Active)}
}

func (m *MemoryStore) LoadMuted() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return false, m.FailReads
	}
	return m.muted, nil
}

func (m *MemoryStore) SaveMuted(muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.muted = muted
	return nil
}

func (m *MemoryStore) LoadActiveAlarms() ([]alarm.Active, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return nil, m.FailReads
	}
	actives := make([]alarm.Active, 0, len(m.alarms))
	for _, a := range m.alarms {
		actives = append(actives, a)
	}
	return actives, nil
}

func (m *MemoryStore) SaveActiveAlarm(a alarm.Active) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.alarms[a.Identifier] = a
	return nil
}

func (m *MemoryStore) DeleteActiveAlarms(identifiers []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	for _, id := range identifiers {
		delete(m.alarms, id)
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
