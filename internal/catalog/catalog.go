// Package catalog holds the static vocabulary of UPS/ATS trap conditions:
// which trap code means which condition, how severe it is, and which
// resumption event clears it. This package has NO external dependencies
// and performs no I/O; classification is pure with respect to all
// runtime state.
package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// Severity classifies a condition for effector intensity.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// EventType classifies what a condition report means for alarm state.
type EventType string

const (
	// EventTrigger reports an alarm starting or active.
	EventTrigger EventType = "trigger"
	// EventResumption reports a previously triggered alarm clearing.
	EventResumption EventType = "resumption"
	// EventState is informational with no alarm implication.
	EventState EventType = "state"
)

// Definition describes one recognized condition. Immutable after load.
type Definition struct {
	// Identifier is the MIB object name, e.g. "atsSourceAvoltageAbnormal".
	Identifier string
	// Code is the trap OID suffix under the enterprise trap group.
	Code int
	Severity Severity
	Type     EventType
	// Description is the human text logged and mailed for this condition.
	Description string
	// Resumption names the resumption condition that auto-clears this
	// trigger. Empty for non-triggers and for triggers that only clear
	// via operator action.
	Resumption string
}

// ErrUnknownCondition is returned by Classify for trap codes not in the
// catalog. Callers log and drop the event; it must never stop the listener.
var ErrUnknownCondition = errors.New("catalog: unknown condition code")

// Event is the result of classifying an inbound trap code.
type Event struct {
	Definition Definition
	// Clears lists the trigger identifiers this event clears from the
	// active-alarm registry. Non-empty only for resumption events.
	Clears []string
}

// IsTrigger reports whether the event starts an alarm.
func (e Event) IsTrigger() bool { return e.Definition.Type == EventTrigger }

// IsResumption reports whether the event clears alarms.
func (e Event) IsResumption() bool { return e.Definition.Type == EventResumption }

// Catalog is the loaded condition table with its lookup indexes.
// Built once at startup; safe for concurrent use.
type Catalog struct {
	byCode map[int]Definition
	byName map[string]Definition
	// clearedBy maps a resumption identifier to the trigger identifiers
	// it clears. Built once here, never recomputed per classification.
	clearedBy map[string][]string
}

// New builds a Catalog from definitions, validating that identifiers and
// codes are unique and that every Resumption reference names a definition
// of type resumption.
func New(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		byCode:    make(map[int]Definition, len(defs)),
		byName:    make(map[string]Definition, len(defs)),
		clearedBy: make(map[string][]string),
	}

	for _, d := range defs {
		if d.Identifier == "" {
			return nil, fmt.Errorf("catalog: definition with code %d has empty identifier", d.Code)
		}
		if _, dup := c.byName[d.Identifier]; dup {
			return nil, fmt.Errorf("catalog: duplicate identifier %q", d.Identifier)
		}
		if _, dup := c.byCode[d.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate code %d (%s)", d.Code, d.Identifier)
		}
		c.byName[d.Identifier] = d
		c.byCode[d.Code] = d
	}

	for _, d := range defs {
		if d.Resumption == "" {
			continue
		}
		if d.Type != EventTrigger {
			return nil, fmt.Errorf("catalog: %s is %s but names resumption %q", d.Identifier, d.Type, d.Resumption)
		}
		target, ok := c.byName[d.Resumption]
		if !ok {
			return nil, fmt.Errorf("catalog: %s names unknown resumption %q", d.Identifier, d.Resumption)
		}
		if target.Type != EventResumption {
			return nil, fmt.Errorf("catalog: %s resumption %q is %s, want resumption", d.Identifier, d.Resumption, target.Type)
		}
		c.clearedBy[d.Resumption] = append(c.clearedBy[d.Resumption], d.Identifier)
	}

	// Deterministic clear order for logs and tests.
	for _, triggers := range c.clearedBy {
		sort.Strings(triggers)
	}

	return c, nil
}

// Classify resolves a trap code to a classified event.
func (c *Catalog) Classify(code int) (Event, error) {
	def, ok := c.byCode[code]
	if !ok {
		return Event{}, fmt.Errorf("%w: %d", ErrUnknownCondition, code)
	}

	ev := Event{Definition: def}
	if def.Type == EventResumption {
		// Copy so callers cannot mutate the index.
		ev.Clears = append([]string(nil), c.clearedBy[def.Identifier]...)
	}
	return ev, nil
}

// Lookup returns the definition for an identifier.
func (c *Catalog) Lookup(identifier string) (Definition, bool) {
	d, ok := c.byName[identifier]
	return d, ok
}

// Definitions returns all definitions ordered by code.
func (c *Catalog) Definitions() []Definition {
	defs := make([]Definition, 0, len(c.byCode))
	for _, d := range c.byCode {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}

// Len returns the number of loaded definitions.
func (c *Catalog) Len() int { return len(c.byCode) }
