// Package monitor ties the trap classifier, alarm registry, panel,
// persistence, email gate, and MQTT publisher together. It owns the one
// lock that serializes event processing: traps, button presses, and HTTP
// control requests all funnel through here.
package monitor

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/alarm"
	"github.com/sweeney/ups-trap-monitor/internal/catalog"
	"github.com/sweeney/ups-trap-monitor/internal/mqtt"
	"github.com/sweeney/ups-trap-monitor/internal/notify"
	"github.com/sweeney/ups-trap-monitor/internal/panel"
	"github.com/sweeney/ups-trap-monitor/internal/snmp"
	"github.com/sweeney/ups-trap-monitor/internal/status"
	"github.com/sweeney/ups-trap-monitor/internal/store"
)

// Options configures a Monitor. Catalog, Store, and Outputs are required;
// Gate, Sender, Publisher, and Tracker are optional and nil disables the
// corresponding side effect.
type Options struct {
	Catalog   *catalog.Catalog
	Store     store.Store
	Outputs   panel.Outputs
	Gate      *notify.Gate
	Sender    notify.Sender
	Publisher mqtt.Publisher
	Tracker   *status.Tracker

	// Now overrides the clock for tests.
	Now func() time.Time
}

// Monitor is the daemon's central controller.
type Monitor struct {
	mu sync.Mutex

	cat   *catalog.Catalog
	reg   *alarm.Registry
	muted bool

	store     store.Store
	outputs   panel.Outputs
	gate      *notify.Gate
	sender    notify.Sender
	publisher mqtt.Publisher
	tracker   *status.Tracker

	counts status.EventCounts
	now    func() time.Time
}

// New creates a Monitor and restores persisted state: the mute flag and
// the active alarms from before the last shutdown. The panel is driven to
// match the restored state before New returns.
func New(opts Options) (*Monitor, error) {
	if opts.Catalog == nil {
		return nil, errors.New("monitor: catalog is required")
	}
	if opts.Store == nil {
		return nil, errors.New("monitor: store is required")
	}
	if opts.Outputs == nil {
		return nil, errors.New("monitor: outputs are required")
	}

	m := &Monitor{
		cat:       opts.Catalog,
		reg:       alarm.NewRegistry(),
		store:     opts.Store,
		outputs:   opts.Outputs,
		gate:      opts.Gate,
		sender:    opts.Sender,
		publisher: opts.Publisher,
		tracker:   opts.Tracker,
		now:       opts.Now,
	}
	if m.now == nil {
		m.now = time.Now
	}

	// A corrupt or unreadable state store degrades to defaults with a
	// warning. The listener must still come up.
	muted, err := m.store.LoadMuted()
	if err != nil {
		log.Printf("monitor: load mute flag: %v, starting unmuted", err)
		muted = false
	}
	m.muted = muted

	persisted, err := m.store.LoadActiveAlarms()
	if err != nil {
		log.Printf("monitor: load active alarms: %v, starting with none", err)
		persisted = nil
	}
	m.reg.Restore(persisted)
	if len(persisted) > 0 {
		log.Printf("monitor: restored %d active alarms from previous run", len(persisted))
	}

	m.mu.Lock()
	m.reconcileLocked()
	m.updateTrackerLocked()
	m.mu.Unlock()

	return m, nil
}

// HandleTrap classifies one normalized trap and applies its effects. It is
// the snmp.Handler the listener invokes.
func (m *Monitor) HandleTrap(t snmp.Trap) {
	ev, err := m.cat.Classify(t.Code)
	if err != nil {
		m.mu.Lock()
		m.counts.Unknown++
		m.updateTrackerLocked()
		m.mu.Unlock()
		log.Printf("monitor: unknown trap code %d (oid %s) from %s", t.Code, t.OID, t.Source)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d := ev.Definition
	log.Printf("monitor: %s %s [%s] from %s", d.Type, d.Identifier, d.Severity, t.Source)

	var cleared []string
	switch {
	case ev.IsTrigger():
		m.counts.Triggers++
		fresh := m.reg.RecordTrigger(d.Identifier, d.Severity, t.Timestamp)
		if !fresh {
			log.Printf("monitor: %s already active, refreshed", d.Identifier)
		}
		m.persistAlarmLocked(d.Identifier)
	case ev.IsResumption():
		m.counts.Resumptions++
		cleared = m.reg.Clear(ev.Clears)
		if len(cleared) == 0 {
			log.Printf("monitor: resumption %s with nothing to clear", d.Identifier)
		}
		m.persistClearLocked(cleared)
	default:
		m.counts.States++
	}

	target := m.reconcileLocked()
	snap := m.reg.Snapshot()
	m.notifyLocked(ev, t, snap)
	m.publishLocked(ev, t, snap, cleared, target)
	m.updateTrackerLocked()
}

// ToggleMute flips the mute flag, persists it, and re-derives the buzzer
// from the current alarm set rather than from any cached effector state.
// Returns the new flag value.
func (m *Monitor) ToggleMute() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.muted = !m.muted
	log.Printf("monitor: mute set to %v", m.muted)

	if err := m.store.SaveMuted(m.muted); err != nil {
		log.Printf("monitor: persist mute flag: %v", err)
	}

	m.reconcileLocked()
	m.updateTrackerLocked()
	return m.muted, nil
}

// SetMuted forces the mute flag to an absolute value, for admin tooling.
// The button path goes through ToggleMute and is strict negation only.
func (m *Monitor) SetMuted(muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.muted == muted {
		return nil
	}
	m.muted = muted
	log.Printf("monitor: mute set to %v", m.muted)

	if err := m.store.SaveMuted(m.muted); err != nil {
		log.Printf("monitor: persist mute flag: %v", err)
	}

	m.reconcileLocked()
	m.updateTrackerLocked()
	return nil
}

// ClearAll removes every active alarm, as an operator reset does. The
// mute flag is left untouched.
func (m *Monitor) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleared := m.reg.ClearAll()
	if len(cleared) == 0 {
		log.Printf("monitor: reset with no active alarms")
	} else {
		log.Printf("monitor: reset cleared %d alarms", len(cleared))
	}
	m.persistClearLocked(cleared)

	m.reconcileLocked()
	m.updateTrackerLocked()
	return nil
}

// OnMutePress is the MUTE button callback.
func (m *Monitor) OnMutePress() {
	if _, err := m.ToggleMute(); err != nil {
		log.Printf("monitor: mute press: %v", err)
	}
}

// OnResetPress is the RESET button callback.
func (m *Monitor) OnResetPress() {
	if err := m.ClearAll(); err != nil {
		log.Printf("monitor: reset press: %v", err)
	}
}

// Muted returns the current mute flag.
func (m *Monitor) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// ActiveAlarms returns the current active alarm identifiers, sorted.
func (m *Monitor) ActiveAlarms() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.ActiveIdentifiers()
}

// reconcileLocked derives the panel target from the registry and mute
// flag and drives the outputs toward it. Output errors are logged, never
// fatal: a wedged GPIO line must not stop trap processing.
func (m *Monitor) reconcileLocked() alarm.TargetState {
	target := alarm.Reconcile(m.reg.Snapshot(), m.muted)

	for sev, on := range target.Leds {
		if err := m.outputs.SetLed(sev, on); err != nil {
			log.Printf("monitor: set %s led: %v", sev, err)
		}
	}
	if err := m.outputs.SetBuzzer(target.Buzzer); err != nil {
		log.Printf("monitor: set buzzer: %v", err)
	}
	return target
}

func (m *Monitor) persistAlarmLocked(identifier string) {
	for _, a := range m.reg.Snapshot().Alarms {
		if a.Identifier == identifier {
			if err := m.store.SaveActiveAlarm(a); err != nil {
				log.Printf("monitor: persist alarm %s: %v", identifier, err)
			}
			return
		}
	}
}

func (m *Monitor) persistClearLocked(identifiers []string) {
	if len(identifiers) == 0 {
		return
	}
	if err := m.store.DeleteActiveAlarms(identifiers); err != nil {
		log.Printf("monitor: persist clear of %v: %v", identifiers, err)
	}
}

// notifyLocked sends the alert email when the gate allows it. Send
// failures do not open the cooldown window, so the next event for the
// same condition retries.
func (m *Monitor) notifyLocked(ev catalog.Event, t snmp.Trap, snap alarm.Snapshot) {
	if m.sender == nil || m.gate == nil {
		return
	}
	if !m.gate.ShouldNotify(ev, t.Timestamp) {
		return
	}

	msg := notify.BuildMessage(ev, t.Source, t.Variables, snap.Identifiers(), t.Timestamp)
	if err := m.sender.Send(msg); err != nil {
		log.Printf("monitor: send email for %s: %v", ev.Definition.Identifier, err)
		return
	}
	m.gate.RecordSent(ev.Definition.Identifier, t.Timestamp)
	m.counts.EmailsSent++
}

func (m *Monitor) publishLocked(ev catalog.Event, t snmp.Trap, snap alarm.Snapshot, cleared []string, target alarm.TargetState) {
	if m.publisher == nil {
		return
	}

	d := ev.Definition
	err := m.publisher.Publish(mqtt.AlarmEvent{
		Timestamp:    t.Timestamp,
		Identifier:   d.Identifier,
		Type:         d.Type,
		Severity:     d.Severity,
		Description:  d.Description,
		Source:       t.Source,
		Cleared:      cleared,
		ActiveAlarms: snap.Identifiers(),
		Muted:        m.muted,
		BuzzerOn:     target.Buzzer,
	})
	if err != nil {
		log.Printf("monitor: publish %s: %v", d.Identifier, err)
	}
}

func (m *Monitor) updateTrackerLocked() {
	if m.tracker == nil {
		return
	}
	snap := m.reg.Snapshot()
	target := alarm.Reconcile(snap, m.muted)
	m.tracker.Update(snap.Alarms, m.muted, target, m.counts)
}
