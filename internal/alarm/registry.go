// Package alarm tracks which trigger conditions are currently active and
// derives the target state of the panel effectors from that aggregate.
// The package is pure with respect to hardware and time: timestamps are
// injected, nothing here does I/O, and nothing here locks. The monitor
// serializes all mutations.
package alarm

import (
	"sort"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// Active describes one currently-active trigger condition.
type Active struct {
	Identifier string
	Severity   catalog.Severity
	FirstSeen  time.Time
	LastSeen   time.Time
}

// Registry is the mutable map of active alarms. An entry exists iff the
// trigger has fired and has not been cleared by its resumption or by an
// operator reset.
type Registry struct {
	active map[string]*Active
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[string]*Active)}
}

// Restore seeds the registry from persisted entries, e.g. after a restart.
func (r *Registry) Restore(entries []Active) {
	for _, e := range entries {
		e := e
		r.active[e.Identifier] = &e
	}
}

// RecordTrigger inserts or refreshes an active alarm. It reports whether
// this was a new activation: repeated triggers only refresh LastSeen.
func (r *Registry) RecordTrigger(identifier string, severity catalog.Severity, now time.Time) bool {
	if a, ok := r.active[identifier]; ok {
		a.LastSeen = now
		return false
	}
	r.active[identifier] = &Active{
		Identifier: identifier,
		Severity:   severity,
		FirstSeen:  now,
		LastSeen:   now,
	}
	return true
}

// Clear removes the listed identifiers. Absent identifiers are skipped;
// a resumption may arrive without a prior observed trigger (e.g. after a
// restart) and that is not an error. Returns the identifiers actually
// removed.
func (r *Registry) Clear(identifiers []string) []string {
	var removed []string
	for _, id := range identifiers {
		if _, ok := r.active[id]; ok {
			delete(r.active, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// ClearAll removes every active alarm (operator reset). Returns the
// identifiers removed.
func (r *Registry) ClearAll() []string {
	ids := r.ActiveIdentifiers()
	r.active = make(map[string]*Active)
	return ids
}

// IsAnyActive reports whether at least one alarm is active. This aggregate
// is the only registry input the reconciler needs.
func (r *Registry) IsAnyActive() bool {
	return len(r.active) > 0
}

// ActiveSeverities returns the set of severities with at least one active
// alarm.
func (r *Registry) ActiveSeverities() map[catalog.Severity]bool {
	set := make(map[catalog.Severity]bool)
	for _, a := range r.active {
		set[a.Severity] = true
	}
	return set
}

// ActiveIdentifiers returns the active trigger identifiers, sorted.
func (r *Registry) ActiveIdentifiers() []string {
	ids := make([]string, 0, len(r.active))
	for id := range r.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns a consistent value copy of the registry for
// reconciliation, logging, and the status tracker.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Severities: r.ActiveSeverities(),
	}
	for _, id := range r.ActiveIdentifiers() {
		snap.Alarms = append(snap.Alarms, *r.active[id])
	}
	return snap
}

// Snapshot is a point-in-time copy of registry state. It is a value type,
// safe to use after the monitor's lock is released.
type Snapshot struct {
	Alarms     []Active
	Severities map[catalog.Severity]bool
}

// IsAnyActive reports whether the snapshot contains any active alarm.
func (s Snapshot) IsAnyActive() bool {
	return len(s.Alarms) > 0
}

// Identifiers returns the active identifiers in the snapshot.
func (s Snapshot) Identifiers() []string {
	ids := make([]string, 0, len(s.Alarms))
	for _, a := range s.Alarms {
		ids = append(ids, a.Identifier)
	}
	return ids
}
