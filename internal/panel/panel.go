// Package panel drives the alarm panel hardware: severity LEDs, the
// buzzer, and the MUTE/RESET push buttons. The real implementation uses
// the Linux GPIO character device; the fake implementation allows testing
// without hardware.
package panel

import "github.com/sweeney/ups-trap-monitor/internal/catalog"

// Outputs sets panel output state. All calls are idempotent: setting an
// LED or the buzzer to its current state is safe and must not glitch the
// hardware. Implementations never block on hardware acknowledgment.
type Outputs interface {
	// SetLed drives the LED for a severity class.
	SetLed(sev catalog.Severity, on bool) error

	// SetBuzzer starts or stops the audible alarm.
	SetBuzzer(on bool) error

	// Close releases GPIO resources, leaving all outputs off.
	Close() error
}

// Buttons delivers debounced button presses. Each physical press invokes
// the corresponding callback exactly once; debouncing happens below this
// interface.
type Buttons interface {
	Close() error
}

// Pin definitions (BCM numbering), from the panel wiring map.
const (
	DefaultPinCritical = 12 // ALARM LED (red)
	DefaultPinWarning  = 26 // LOAD overload LED (red)
	DefaultPinInfo     = 16 // SYSTEM OK LED (green)
	DefaultPinBuzzer   = 18 // speaker, 1-4 kHz
	DefaultPinMute     = 19 // MUTE button (input)
	DefaultPinReset    = 21 // RESET button (input)
)

// OutputPins configures which BCM pin drives each output.
type OutputPins struct {
	Critical int
	Warning  int
	Info     int
	Buzzer   int
}

// DefaultOutputPins returns the panel's wired pin assignment.
func DefaultOutputPins() OutputPins {
	return OutputPins{
		Critical: DefaultPinCritical,
		Warning:  DefaultPinWarning,
		Info:     DefaultPinInfo,
		Buzzer:   DefaultPinBuzzer,
	}
}
