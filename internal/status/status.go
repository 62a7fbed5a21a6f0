// Package status provides a thread-safe status tracker for the trap
// monitor daemon. It is read by HTTP handlers and the MQTT heartbeat.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/alarm"
	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// Config contains daemon configuration for display.
type Config struct {
	ListenAddr      string
	Community       string
	Broker          string
	HTTPAddr        string
	CooldownSeconds int64
	DBPath          string
}

// EventCounts tracks how many events of each kind were processed since
// startup.
type EventCounts struct {
	Triggers    int
	Resumptions int
	States      int
	Unknown     int
	EmailsSent  int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Alarms        []alarm.Active
	Muted         bool
	Target        alarm.TargetState
	Counts        EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the active alarm list, mute flag, panel target, and event
// counts. Called by the monitor after every processed event.
func (t *Tracker) Update(alarms []alarm.Active, muted bool, target alarm.TargetState, counts EventCounts) {
	t.mu.Lock()
	t.snap.Alarms = append([]alarm.Active(nil), alarms...)
	t.snap.Muted = muted
	t.snap.Target = copyTarget(target)
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.Alarms = append([]alarm.Active(nil), t.snap.Alarms...)
	s.Target = copyTarget(t.snap.Target)
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

func copyTarget(target alarm.TargetState) alarm.TargetState {
	out := alarm.TargetState{Buzzer: target.Buzzer}
	if target.Leds != nil {
		out.Leds = make(map[catalog.Severity]bool, len(target.Leds))
		for sev, on := range target.Leds {
			out.Leds[sev] = on
		}
	}
	return out
}
