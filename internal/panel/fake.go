package panel

import (
	"sync"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// FakeOutputs records output commands for test assertions.
type FakeOutputs struct {
	mu sync.Mutex

	// Leds holds the last state set per severity.
	Leds map[catalog.Severity]bool

	// Buzzer holds the last buzzer state set.
	Buzzer bool

	// LedCalls and BuzzerCalls count every set command, including
	// redundant ones, so tests can assert idempotence behavior.
	LedCalls    int
	BuzzerCalls int

	// SetError, if set, is returned by SetLed and SetBuzzer.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeOutputs creates a FakeOutputs with all outputs off.
func NewFakeOutputs() *FakeOutputs {
	return &FakeOutputs{Leds: make(map[catalog.Severity]bool)}
}

// SetLed records the LED state.
func (f *FakeOutputs) SetLed(sev catalog.Severity, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LedCalls++
	if f.SetError != nil {
		return f.SetError
	}
	f.Leds[sev] = on
	return nil
}

// SetBuzzer records the buzzer state.
func (f *FakeOutputs) SetBuzzer(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BuzzerCalls++
	if f.SetError != nil {
		return f.SetError
	}
	f.Buzzer = on
	return nil
}

// Close marks the outputs as closed.
func (f *FakeOutputs) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Led returns the recorded state for a severity LED.
func (f *FakeOutputs) Led(sev catalog.Severity) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Leds[sev]
}

// BuzzerOn returns the recorded buzzer state.
func (f *FakeOutputs) BuzzerOn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Buzzer
}

// FakeButtons invokes the registered callbacks on demand, standing in for
// debounced hardware edges.
type FakeButtons struct {
	OnMute  func()
	OnReset func()
	Closed  bool
}

// NewFakeButtons creates a FakeButtons with the given callbacks.
func NewFakeButtons(onMute, onReset func()) *FakeButtons {
	return &FakeButtons{OnMute: onMute, OnReset: onReset}
}

// PressMute simulates one debounced MUTE press.
func (f *FakeButtons) PressMute() {
	if f.OnMute != nil {
		f.OnMute()
	}
}

// PressReset simulates one debounced RESET press.
func (f *FakeButtons) PressReset() {
	if f.OnReset != nil {
		f.OnReset()
	}
}

// Close marks the buttons as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}
