package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/alarm"
	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{ListenAddr: ":162", Community: "public", Broker: "tcp://localhost:1883", HTTPAddr: ":8080"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.ListenAddr != ":162" {
		t.Errorf("Config.ListenAddr: got %q, want %q", snap.Config.ListenAddr, ":162")
	}
	if snap.Config.HTTPAddr != ":8080" {
		t.Errorf("Config.HTTPAddr: got %q, want %q", snap.Config.HTTPAddr, ":8080")
	}
	if snap.Muted {
		t.Error("expected Muted=false initially")
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
	if len(snap.Alarms) != 0 {
		t.Errorf("expected no alarms initially, got %d", len(snap.Alarms))
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	alarms := []alarm.Active{
		{Identifier: "atsOutputOverLoad", Severity: catalog.SeverityCritical, FirstSeen: now, LastSeen: now},
	}
	target := alarm.TargetState{
		Leds:   map[catalog.Severity]bool{catalog.SeverityCritical: true},
		Buzzer: true,
	}
	tr.Update(alarms, false, target, EventCounts{Triggers: 3, Unknown: 1})

	snap := tr.Snapshot()
	if len(snap.Alarms) != 1 || snap.Alarms[0].Identifier != "atsOutputOverLoad" {
		t.Errorf("unexpected alarms: %v", snap.Alarms)
	}
	if snap.Muted {
		t.Error("expected Muted=false")
	}
	if !snap.Target.Buzzer {
		t.Error("expected Target.Buzzer=true")
	}
	if !snap.Target.Leds[catalog.SeverityCritical] {
		t.Error("expected critical LED on")
	}
	if snap.Counts.Triggers != 3 {
		t.Errorf("Counts.Triggers: got %d, want 3", snap.Counts.Triggers)
	}
	if snap.Counts.Unknown != 1 {
		t.Errorf("Counts.Unknown: got %d, want 1", snap.Counts.Unknown)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}

	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=false")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{})

	before := time.Now()
	snap := tr.Snapshot()
	after := time.Now()

	if snap.Now.Before(before) || snap.Now.After(after) {
		t.Errorf("Now (%v) not between %v and %v", snap.Now, before, after)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	now := time.Now()
	tr.Update(
		[]alarm.Active{{Identifier: "atsInput1Fail", Severity: catalog.SeverityWarning, FirstSeen: now, LastSeen: now}},
		false,
		alarm.TargetState{Leds: map[catalog.Severity]bool{catalog.SeverityWarning: true}, Buzzer: true},
		EventCounts{Triggers: 1},
	)

	snap1 := tr.Snapshot()

	tr.Update(nil, true, alarm.TargetState{Leds: map[catalog.Severity]bool{}}, EventCounts{Triggers: 1, Resumptions: 1})

	// snap1 should still reflect old state
	if len(snap1.Alarms) != 1 {
		t.Error("snapshot should be a copy; alarms were modified")
	}
	if snap1.Muted {
		t.Error("snapshot should be a copy; muted was modified")
	}
	if !snap1.Target.Leds[catalog.SeverityWarning] {
		t.Error("snapshot should be a copy; target was modified")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Alarms: []alarm.Active{
			{Identifier: "atsOutputOverLoad", Severity: catalog.SeverityCritical, FirstSeen: start, LastSeen: start.Add(time.Minute)},
		},
		Muted: false,
		Target: alarm.TargetState{
			Leds:   map[catalog.Severity]bool{catalog.SeverityCritical: true},
			Buzzer: true,
		},
		Counts:        EventCounts{Triggers: 5, Resumptions: 2, Unknown: 1, EmailsSent: 3},
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		MQTTConnected: true,
		Config:        Config{ListenAddr: ":162", Broker: "tcp://localhost:1883", HTTPAddr: ":8080", CooldownSeconds: 300},
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(parsed.Status.Alarms) != 1 {
		t.Fatalf("expected 1 alarm, got %d", len(parsed.Status.Alarms))
	}
	if parsed.Status.Alarms[0].Identifier != "atsOutputOverLoad" {
		t.Errorf("alarm identifier: got %q", parsed.Status.Alarms[0].Identifier)
	}
	if parsed.Status.Alarms[0].Severity != "critical" {
		t.Errorf("alarm severity: got %q", parsed.Status.Alarms[0].Severity)
	}
	if !parsed.Status.Panel.Buzzer {
		t.Error("expected Panel.Buzzer=true")
	}
	if !parsed.Status.Panel.CriticalLed {
		t.Error("expected Panel.CriticalLed=true")
	}
	if parsed.Status.Panel.WarningLed {
		t.Error("expected Panel.WarningLed=false")
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
	if !parsed.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if parsed.Status.Counts.Triggers != 5 {
		t.Errorf("Counts.Triggers: got %d, want 5", parsed.Status.Counts.Triggers)
	}
	if parsed.Status.Counts.EmailsSent != 3 {
		t.Errorf("Counts.EmailsSent: got %d, want 3", parsed.Status.Counts.EmailsSent)
	}
	if parsed.Status.Config.CooldownSeconds != 300 {
		t.Errorf("Config.CooldownSeconds: got %d, want 300", parsed.Status.Config.CooldownSeconds)
	}
	// Event and Reason should be omitted
	if parsed.Status.Event != "" {
		t.Errorf("expected empty Event for web format, got %q", parsed.Status.Event)
	}
	if parsed.Status.Reason != "" {
		t.Errorf("expected empty Reason for web format, got %q", parsed.Status.Reason)
	}
}

func TestFormatJSONEmptyAlarms(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatJSON(snap)

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	status := raw["status"].(map[string]interface{})
	alarms, ok := status["active_alarms"].([]interface{})
	if !ok {
		t.Fatal("active_alarms should be an array, not null")
	}
	if len(alarms) != 0 {
		t.Errorf("expected empty alarms array, got %d", len(alarms))
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Muted:         true,
		Counts:        EventCounts{Triggers: 3},
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		MQTTConnected: true,
		Config:        Config{Broker: "tcp://localhost:1883"},
	}

	data := FormatStatusEvent(snap, "HEARTBEAT", "")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "HEARTBEAT" {
		t.Errorf("Event: got %q, want HEARTBEAT", parsed.Status.Event)
	}
	if parsed.Status.Reason != "" {
		t.Errorf("Reason: got %q, want empty", parsed.Status.Reason)
	}
	if !parsed.Status.Muted {
		t.Error("expected Muted=true")
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
}

func TestFormatStatusEventShutdown(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(30 * time.Minute),
		Config:    Config{Broker: "tcp://localhost:1883"},
	}

	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("Event: got %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("Reason: got %q, want SIGTERM", parsed.Status.Reason)
	}
}

func TestFormatStatusEventOmitsReasonWhenEmpty(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	status := raw["status"].(map[string]interface{})
	if _, exists := status["reason"]; exists {
		t.Error("reason should be omitted when empty")
	}
	if status["event"] != "STARTUP" {
		t.Errorf("event: got %v, want STARTUP", status["event"])
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			now := time.Now()
			tr.Update(
				[]alarm.Active{{Identifier: "atsInput1Fail", Severity: catalog.SeverityWarning, FirstSeen: now, LastSeen: now}},
				i%2 == 0,
				alarm.TargetState{Leds: map[catalog.Severity]bool{catalog.SeverityWarning: true}},
				EventCounts{Triggers: i},
			)
			tr.SetMQTTConnected(i%2 == 0)
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = snap.Uptime()
			_ = FormatJSON(snap)
		}
	}()

	wg.Wait()
}
