package internal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
	"github.com/sweeney/ups-trap-monitor/internal/monitor"
	"github.com/sweeney/ups-trap-monitor/internal/mqtt"
	"github.com/sweeney/ups-trap-monitor/internal/notify"
	"github.com/sweeney/ups-trap-monitor/internal/panel"
	"github.com/sweeney/ups-trap-monitor/internal/snmp"
	"github.com/sweeney/ups-trap-monitor/internal/status"
	"github.com/sweeney/ups-trap-monitor/internal/store"
)

// harness wires the monitor to fakes the way main wires it to hardware,
// with the shipped condition catalog.
type harness struct {
	mon     *monitor.Monitor
	outputs *panel.FakeOutputs
	buttons *panel.FakeButtons
	store   *store.MemoryStore
	sender  *notify.FakeSender
	pub     *mqtt.FakePublisher
	tracker *status.Tracker
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		outputs: panel.NewFakeOutputs(),
		store:   store.NewMemoryStore(),
		sender:  notify.NewFakeSender(),
		pub:     mqtt.NewFakePublisher(),
		tracker: status.NewTracker(time.Now(), status.Config{}),
	}
	mon, err := monitor.New(monitor.Options{
		Catalog:   catalog.Default(),
		Store:     h.store,
		Outputs:   h.outputs,
		Gate:      notify.NewGate(300 * time.Second),
		Sender:    h.sender,
		Publisher: h.pub,
		Tracker:   h.tracker,
	})
	if err != nil {
		t.Fatalf("new monitor: %v", err)
	}
	h.mon = mon
	h.buttons = panel.NewFakeButtons(mon.OnMutePress, mon.OnResetPress)
	return h
}

// deliver routes a raw trap OID through normalization and into the
// monitor, as the UDP listener does.
func (h *harness) deliver(t *testing.T, oid string, at time.Time) {
	t.Helper()
	code, ok := snmp.NormalizeTrapOID(oid)
	if !ok {
		t.Fatalf("OID %s did not normalize", oid)
	}
	h.mon.HandleTrap(snmp.Trap{
		Code:      code,
		OID:       oid,
		Source:    "192.168.1.50",
		Variables: map[string]string{"1.3.6.1.4.1.37662.1.2.3.2.1.0": "overload 110%"},
		Timestamp: at,
	})
}

func TestIntegrationOverloadLifecycle(t *testing.T) {
	h := newHarness(t)
	at := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

	// Critical overload trap arrives (agent 3 form).
	h.deliver(t, "1.3.6.1.4.1.37662.1.2.3.1.2.6", at)

	if got := h.mon.ActiveAlarms(); len(got) != 1 || got[0] != "atsOutputOverLoad" {
		t.Fatalf("active alarms: %v", got)
	}
	if !h.outputs.BuzzerOn() {
		t.Error("buzzer should sound")
	}
	if !h.outputs.Led(catalog.SeverityCritical) {
		t.Error("critical LED should be lit")
	}
	if got := len(h.sender.Sent()); got != 1 {
		t.Fatalf("expected 1 email, got %d", got)
	}
	if got := len(h.pub.Events); got != 1 {
		t.Fatalf("expected 1 MQTT event, got %d", got)
	}

	// Operator mutes.
	h.buttons.PressMute()
	if h.outputs.BuzzerOn() {
		t.Error("buzzer should be silent after mute")
	}
	if !h.outputs.Led(catalog.SeverityCritical) {
		t.Error("critical LED must stay lit while muted")
	}

	// Load returns to normal (agent 2 form with zero infix).
	h.deliver(t, "1.3.6.1.4.1.37662.1.2.2.1.2.0.23", at.Add(5*time.Minute))

	if got := h.mon.ActiveAlarms(); len(got) != 0 {
		t.Fatalf("active alarms after resumption: %v", got)
	}
	if h.outputs.Led(catalog.SeverityCritical) {
		t.Error("critical LED should go dark after resumption")
	}
	if got := len(h.sender.Sent()); got != 2 {
		t.Errorf("expected recovery email, got %d total", got)
	}

	last := h.pub.Events[len(h.pub.Events)-1]
	if last.Identifier != "atsOutputOverLoadToNormal" {
		t.Errorf("last published event: %s", last.Identifier)
	}
	if len(last.Cleared) != 1 || last.Cleared[0] != "atsOutputOverLoad" {
		t.Errorf("cleared list: %v", last.Cleared)
	}
}

func TestIntegrationResetButtonClearsStuckTrigger(t *testing.T) {
	h := newHarness(t)
	at := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

	// atsLoadOff has no resumption trap; only reset clears it.
	h.deliver(t, "1.3.6.1.4.1.37662.1.2.3.1.2.68", at)
	if got := h.mon.ActiveAlarms(); len(got) != 1 {
		t.Fatalf("active alarms: %v", got)
	}

	h.buttons.PressReset()
	if got := h.mon.ActiveAlarms(); len(got) != 0 {
		t.Fatalf("active alarms after reset: %v", got)
	}
	if h.outputs.BuzzerOn() {
		t.Error("buzzer should stop after reset")
	}
}

func TestIntegrationAgent2RenumberedTrap(t *testing.T) {
	h := newHarness(t)

	// The agent-2 firmware renumbers plain code 17: it arrives meaning
	// source A voltage resumption (19), not the EPO alarm.
	h.deliver(t, "1.3.6.1.4.1.37662.1.2.2.1.2.17", time.Now())

	if got := h.mon.ActiveAlarms(); len(got) != 0 {
		t.Fatalf("renumbered trap 17 is a resumption, got active: %v", got)
	}
	if len(h.pub.Events) != 1 || h.pub.Events[0].Identifier != "atsSourceAvoltageAbnormalToNormal" {
		t.Fatalf("unexpected published events: %+v", h.pub.Events)
	}
}

func TestIntegrationStateTrapTouchesNothing(t *testing.T) {
	h := newHarness(t)

	// Preferred-source change: informational only.
	h.deliver(t, "1.3.6.1.4.1.37662.1.2.3.1.2.64", time.Now())

	if got := h.mon.ActiveAlarms(); len(got) != 0 {
		t.Fatalf("state trap must not activate alarms: %v", got)
	}
	if h.outputs.BuzzerOn() {
		t.Error("buzzer must stay silent for state traps")
	}
	if got := len(h.sender.Sent()); got != 0 {
		t.Errorf("state trap must not email, got %d", got)
	}
	if got := len(h.pub.Events); got != 1 {
		t.Errorf("state trap should still publish, got %d", got)
	}
}

func TestIntegrationRestartRestoresPanel(t *testing.T) {
	h := newHarness(t)
	at := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

	h.deliver(t, "1.3.6.1.4.1.37662.1.2.3.1.2.6", at) // critical
	h.deliver(t, "1.3.6.1.4.1.37662.1.2.3.1.2.9", at) // warning
	h.buttons.PressMute()

	// New monitor over the same store simulates a restart.
	outputs2 := panel.NewFakeOutputs()
	mon2, err := monitor.New(monitor.Options{
		Catalog: catalog.Default(),
		Store:   h.store,
		Outputs: outputs2,
	})
	if err != nil {
		t.Fatalf("restart monitor: %v", err)
	}

	if got := mon2.ActiveAlarms(); len(got) != 2 {
		t.Fatalf("restored alarms: %v", got)
	}
	if !mon2.Muted() {
		t.Error("mute flag should survive restart")
	}
	if outputs2.BuzzerOn() {
		t.Error("buzzer must stay muted after restart")
	}
	if !outputs2.Led(catalog.SeverityCritical) || !outputs2.Led(catalog.SeverityWarning) {
		t.Error("LEDs should relight from restored alarms")
	}
}

func TestIntegrationPublishedPayloadFormat(t *testing.T) {
	h := newHarness(t)
	at := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

	h.deliver(t, "1.3.6.1.4.1.37662.1.2.3.1.2.6", at)

	if len(h.pub.Payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(h.pub.Payloads))
	}
	var parsed mqtt.Payload
	if err := json.Unmarshal(h.pub.Payloads[0], &parsed); err != nil {
		t.Fatalf("invalid payload JSON: %v", err)
	}
	if parsed.UPS.Event != "atsOutputOverLoad" {
		t.Errorf("payload event: got %q", parsed.UPS.Event)
	}
	if parsed.UPS.Severity != "critical" {
		t.Errorf("payload severity: got %q", parsed.UPS.Severity)
	}
	if parsed.UPS.Timestamp != "2026-05-10T14:00:00Z" {
		t.Errorf("payload timestamp: got %q", parsed.UPS.Timestamp)
	}
	if !parsed.UPS.Buzzer {
		t.Error("payload should report the buzzer on")
	}
}

func TestIntegrationEmailContainsTrapVariables(t *testing.T) {
	h := newHarness(t)

	h.deliver(t, "1.3.6.1.4.1.37662.1.2.3.1.2.6", time.Now())

	sent := h.sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	msg := sent[0]
	if msg.Severity != catalog.SeverityCritical {
		t.Errorf("email severity: got %s", msg.Severity)
	}
	for _, want := range []string{"atsOutputOverLoad", "192.168.1.50", "overload 110%"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("email body missing %q:\n%s", want, msg.Body)
		}
	}
}
