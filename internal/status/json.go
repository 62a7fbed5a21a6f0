package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Alarms        []AlarmJSON `json:"active_alarms"`
	Muted         bool        `json:"muted"`
	Panel         PanelJSON   `json:"panel"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Counts        CountsJSON  `json:"event_counts"`
	Config        ConfigJSON  `json:"config"`
}

// AlarmJSON is the JSON representation of one active alarm.
type AlarmJSON struct {
	Identifier string `json:"identifier"`
	Severity   string `json:"severity"`
	FirstSeen  string `json:"first_seen"`
	LastSeen   string `json:"last_seen"`
}

// PanelJSON reports the commanded panel state.
type PanelJSON struct {
	Buzzer      bool `json:"buzzer"`
	CriticalLed bool `json:"critical_led"`
	WarningLed  bool `json:"warning_led"`
	InfoLed     bool `json:"info_led"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Triggers    int `json:"triggers"`
	Resumptions int `json:"resumptions"`
	States      int `json:"states"`
	Unknown     int `json:"unknown"`
	EmailsSent  int `json:"emails_sent"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	ListenAddr      string `json:"listen_addr"`
	Community       string `json:"community"`
	Broker          string `json:"broker"`
	HTTPAddr        string `json:"http_addr"`
	CooldownSeconds int64  `json:"cooldown_seconds"`
	DBPath          string `json:"db_path"`
}

func buildInner(snap Snapshot) StatusInner {
	alarms := make([]AlarmJSON, 0, len(snap.Alarms))
	for _, a := range snap.Alarms {
		alarms = append(alarms, AlarmJSON{
			Identifier: a.Identifier,
			Severity:   string(a.Severity),
			FirstSeen:  a.FirstSeen.UTC().Format(time.RFC3339),
			LastSeen:   a.LastSeen.UTC().Format(time.RFC3339),
		})
	}

	return StatusInner{
		Alarms: alarms,
		Muted:  snap.Muted,
		Panel: PanelJSON{
			Buzzer:      snap.Target.Buzzer,
			CriticalLed: snap.Target.Leds[catalog.SeverityCritical],
			WarningLed:  snap.Target.Leds[catalog.SeverityWarning],
			InfoLed:     snap.Target.Leds[catalog.SeverityInfo],
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Triggers:    snap.Counts.Triggers,
			Resumptions: snap.Counts.Resumptions,
			States:      snap.Counts.States,
			Unknown:     snap.Counts.Unknown,
			EmailsSent:  snap.Counts.EmailsSent,
		},
		Config: ConfigJSON{
			ListenAddr:      snap.Config.ListenAddr,
			Community:       snap.Config.Community,
			Broker:          snap.Config.Broker,
			HTTPAddr:        snap.Config.HTTPAddr,
			CooldownSeconds: snap.Config.CooldownSeconds,
			DBPath:          snap.Config.DBPath,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
