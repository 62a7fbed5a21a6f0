// Package notify decides which classified events deserve an email and
// sends it. The decision is severity-based, never derived from the
// condition name text.
package notify

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// DefaultCooldown is the minimum interval between notifications for the
// same condition identifier.
const DefaultCooldown = 300 * time.Second

// Gate applies the eligibility rule and a per-identifier cooldown.
// Cooldown state is keyed by identifier, not global: two different
// conditions never suppress each other.
type Gate struct {
	cooldown time.Duration
	sent     *cache.Cache
}

// NewGate creates a Gate with the given cooldown. A cooldown <= 0 falls
// back to DefaultCooldown.
func NewGate(cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	// Entries self-expire shortly after the window they guard, so the
	// cache never grows beyond recently-notified identifiers.
	return &Gate{
		cooldown: cooldown,
		sent:     cache.New(cooldown*2, cooldown),
	}
}

// ShouldNotify reports whether the event should produce an email at time
// now. Critical and warning triggers qualify, as does every resumption
// (recovery news); state reports never do. A qualifying event is still
// suppressed while its identifier is inside the cooldown window.
func (g *Gate) ShouldNotify(ev catalog.Event, now time.Time) bool {
	if !eligible(ev) {
		return false
	}
	if v, found := g.sent.Get(ev.Definition.Identifier); found {
		if last, ok := v.(time.Time); ok && now.Sub(last) < g.cooldown {
			return false
		}
	}
	return true
}

// RecordSent opens the cooldown window for an identifier.
func (g *Gate) RecordSent(identifier string, now time.Time) {
	g.sent.Set(identifier, now, g.cooldown*2)
}

func eligible(ev catalog.Event) bool {
	switch ev.Definition.Type {
	case catalog.EventTrigger:
		return ev.Definition.Severity == catalog.SeverityCritical ||
			ev.Definition.Severity == catalog.SeverityWarning
	case catalog.EventResumption:
		return true
	default:
		return false
	}
}
