// Package store persists the panel state that must survive a restart:
// the mute flag and the set of active alarms. Writes happen synchronously
// on every mutation so persisted state never trails in-memory state by
// more than the failed write the monitor already logged.
package store

import (
	"github.com/sweeney/ups-trap-monitor/internal/alarm"
)

// Store is the persistence boundary for the monitor.
type Store interface {
	// LoadMuted returns the persisted mute flag, defaulting to false
	// when nothing was saved yet.
	LoadMuted() (bool, error)

	// SaveMuted writes the mute flag through.
	SaveMuted(muted bool) error

	// LoadActiveAlarms returns all persisted active alarms.
	LoadActiveAlarms() ([]alarm.Active, error)

	// SaveActiveAlarm inserts or refreshes one active alarm row.
	SaveActiveAlarm(a alarm.Active) error

	// DeleteActiveAlarms removes the rows for the given identifiers.
	// Absent identifiers are ignored.
	DeleteActiveAlarms(identifiers []string) error

	// Close releases the underlying storage.
	Close() error
}
