package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/alarm"
	"github.com/sweeney/ups-trap-monitor/internal/catalog"
	"github.com/sweeney/ups-trap-monitor/internal/status"
)

// fakeController records control calls for assertions.
type fakeController struct {
	clearCalls int
	muteCalls  int
	muted      bool
	err        error
}

func (f *fakeController) ClearAll() error {
	if f.err != nil {
		return f.err
	}
	f.clearCalls++
	return nil
}

func (f *fakeController) ToggleMute() (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.muteCalls++
	f.muted = !f.muted
	return f.muted, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker, *fakeController) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		ListenAddr:      ":162",
		Community:       "public",
		Broker:          "tcp://192.168.1.200:1883",
		HTTPAddr:        ":8080",
		CooldownSeconds: 300,
	}
	tr := status.NewTracker(start, cfg)
	fc := &fakeController{}
	srv := New(":0", tr, fc)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr, fc
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr, _ := newTestServer(t)
	now := time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC)
	tr.Update(
		[]alarm.Active{{Identifier: "atsOutputOverLoad", Severity: catalog.SeverityCritical, FirstSeen: now, LastSeen: now}},
		false,
		alarm.TargetState{Leds: map[catalog.Severity]bool{catalog.SeverityCritical: true}, Buzzer: true},
		status.EventCounts{Triggers: 5, Resumptions: 2},
	)
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if len(sj.Status.Alarms) != 1 || sj.Status.Alarms[0].Identifier != "atsOutputOverLoad" {
		t.Errorf("unexpected alarms: %v", sj.Status.Alarms)
	}
	if !sj.Status.Panel.Buzzer {
		t.Error("expected buzzer on")
	}
	if !sj.Status.Panel.CriticalLed {
		t.Error("expected critical LED on")
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("MQTT.Broker: got %q, want tcp://192.168.1.200:1883", sj.Status.MQTT.Broker)
	}
	if sj.Status.Counts.Triggers != 5 {
		t.Errorf("Counts.Triggers: got %d, want 5", sj.Status.Counts.Triggers)
	}
	if sj.Status.Config.Community != "public" {
		t.Errorf("Config.Community: got %q", sj.Status.Config.Community)
	}
}

func TestHTMLEndpointRoot(t *testing.T) {
	ts, tr, _ := newTestServer(t)
	now := time.Now()
	tr.Update(
		[]alarm.Active{{Identifier: "atsInput1Fail", Severity: catalog.SeverityWarning, FirstSeen: now, LastSeen: now}},
		true,
		alarm.TargetState{Leds: map[catalog.Severity]bool{catalog.SeverityWarning: true}, Buzzer: false},
		status.EventCounts{},
	)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "atsInput1Fail") {
		t.Error("expected active alarm in HTML")
	}
	if !strings.Contains(string(body), "Unmute") {
		t.Error("expected Unmute button while muted")
	}
}

func TestHTMLEndpointIndexHTML(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
}

func TestNotFoundForUnknownPath(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	if err != nil {
		t.Fatalf("GET /nonexistent: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestClearEndpoint(t *testing.T) {
	ts, _, fc := newTestServer(t)

	resp, err := http.Post(ts.URL+"/alarms/clear", "", nil)
	if err != nil {
		t.Fatalf("POST /alarms/clear: %v", err)
	}
	resp.Body.Close()

	// Redirect back to the index page
	if resp.StatusCode != 200 {
		t.Errorf("status after redirect: got %d, want 200", resp.StatusCode)
	}
	if fc.clearCalls != 1 {
		t.Errorf("expected 1 ClearAll call, got %d", fc.clearCalls)
	}
}

func TestClearEndpointRejectsGet(t *testing.T) {
	ts, _, fc := newTestServer(t)

	resp, err := http.Get(ts.URL + "/alarms/clear")
	if err != nil {
		t.Fatalf("GET /alarms/clear: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", resp.StatusCode)
	}
	if fc.clearCalls != 0 {
		t.Errorf("expected no ClearAll calls, got %d", fc.clearCalls)
	}
}

func TestMuteEndpoint(t *testing.T) {
	ts, _, fc := newTestServer(t)

	resp, err := http.Post(ts.URL+"/mute", "", nil)
	if err != nil {
		t.Fatalf("POST /mute: %v", err)
	}
	resp.Body.Close()

	if fc.muteCalls != 1 {
		t.Errorf("expected 1 ToggleMute call, got %d", fc.muteCalls)
	}
	if !fc.muted {
		t.Error("expected muted=true after first toggle")
	}

	resp, err = http.Post(ts.URL+"/mute", "", nil)
	if err != nil {
		t.Fatalf("POST /mute: %v", err)
	}
	resp.Body.Close()

	if fc.muted {
		t.Error("expected muted=false after second toggle")
	}
}

func TestStateChangesReflectedInResponse(t *testing.T) {
	ts, tr, _ := newTestServer(t)

	resp1, _ := http.Get(ts.URL + "/index.json")
	var sj1 status.StatusJSON
	json.NewDecoder(resp1.Body).Decode(&sj1)
	resp1.Body.Close()
	if len(sj1.Status.Alarms) != 0 {
		t.Error("expected no alarms initially")
	}
	if sj1.Status.Muted {
		t.Error("expected Muted=false initially")
	}

	now := time.Now()
	tr.Update(
		[]alarm.Active{{Identifier: "atsShortCircuit", Severity: catalog.SeverityCritical, FirstSeen: now, LastSeen: now}},
		true,
		alarm.TargetState{Leds: map[catalog.Severity]bool{catalog.SeverityCritical: true}, Buzzer: false},
		status.EventCounts{Triggers: 1},
	)
	tr.SetMQTTConnected(true)

	resp2, _ := http.Get(ts.URL + "/index.json")
	var sj2 status.StatusJSON
	json.NewDecoder(resp2.Body).Decode(&sj2)
	resp2.Body.Close()

	if len(sj2.Status.Alarms) != 1 {
		t.Fatalf("expected 1 alarm after update, got %d", len(sj2.Status.Alarms))
	}
	if !sj2.Status.Muted {
		t.Error("expected Muted=true after update")
	}
	if sj2.Status.Panel.Buzzer {
		t.Error("expected buzzer off while muted")
	}
	if !sj2.Status.MQTT.Connected {
		t.Error("expected MQTT connected after update")
	}
}
