// Package mqtt publishes classified alarm events and daemon lifecycle
// events, with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// Topic is the MQTT topic for classified alarm events.
const Topic = "energy/ups/monitor/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "energy/ups/monitor/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a classified alarm event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event AlarmEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// AlarmEvent is one classified trap plus the panel state that resulted
// from processing it.
type AlarmEvent struct {
	Timestamp   time.Time
	Identifier  string
	Type        catalog.EventType
	Severity    catalog.Severity
	Description string
	Source      string
	// Cleared lists the trigger identifiers removed by a resumption.
	Cleared []string
	// ActiveAlarms is the registry content after this event.
	ActiveAlarms []string
	Muted        bool
	BuzzerOn     bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	UPS AlarmPayload `json:"ups"`
}

// AlarmPayload contains the alarm event details.
type AlarmPayload struct {
	Timestamp    string   `json:"timestamp"`
	Event        string   `json:"event"`
	Type         string   `json:"type"`
	Severity     string   `json:"severity"`
	Description  string   `json:"description,omitempty"`
	Source       string   `json:"source,omitempty"`
	Cleared      []string `json:"cleared,omitempty"`
	ActiveAlarms []string `json:"active_alarms"`
	Muted        bool     `json:"muted"`
	Buzzer       bool     `json:"buzzer"`
}

// FormatPayload creates the JSON payload for an alarm event.
func FormatPayload(event AlarmEvent) ([]byte, error) {
	payload := Payload{
		UPS: AlarmPayload{
			Timestamp:    event.Timestamp.UTC().Format(time.RFC3339),
			Event:        event.Identifier,
			Type:         string(event.Type),
			Severity:     string(event.Severity),
			Description:  event.Description,
			Source:       event.Source,
			Cleared:      event.Cleared,
			ActiveAlarms: event.ActiveAlarms,
			Muted:        event.Muted,
			Buzzer:       event.BuzzerOn,
		},
	}
	if payload.UPS.ActiveAlarms == nil {
		payload.UPS.ActiveAlarms = []string{}
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
