//go:build linux

package panel

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// Beep cadence for the speaker, matching the panel's alarm pattern.
const (
	beepOn  = 300 * time.Millisecond
	beepOff = 300 * time.Millisecond
)

// RealOutputs drives panel LEDs and the buzzer on actual hardware using
// the Linux GPIO character device.
type RealOutputs struct {
	chip   *gpiocdev.Chip
	leds   map[catalog.Severity]*gpiocdev.Line
	buzzer *gpiocdev.Line

	mu       sync.Mutex
	buzzerOn bool
	stopBeep chan struct{}
	beepDone chan struct{}
}

// NewRealOutputs requests the output lines for actual panel hardware.
func NewRealOutputs(pins OutputPins) (*RealOutputs, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	o := &RealOutputs{
		chip: chip,
		leds: make(map[catalog.Severity]*gpiocdev.Line),
	}

	for sev, pin := range map[catalog.Severity]int{
		catalog.SeverityCritical: pins.Critical,
		catalog.SeverityWarning:  pins.Warning,
		catalog.SeverityInfo:     pins.Info,
	} {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			o.Close()
			return nil, fmt.Errorf("request %s LED pin %d: %w", sev, pin, err)
		}
		o.leds[sev] = line
	}

	buzzer, err := chip.RequestLine(pins.Buzzer, gpiocdev.AsOutput(0))
	if err != nil {
		o.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pins.Buzzer, err)
	}
	o.buzzer = buzzer

	return o, nil
}

// SetLed drives the LED for a severity class.
func (o *RealOutputs) SetLed(sev catalog.Severity, on bool) error {
	line, ok := o.leds[sev]
	if !ok {
		return fmt.Errorf("no LED configured for severity %s", sev)
	}
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s LED: %w", sev, err)
	}
	return nil
}

// SetBuzzer starts or stops the beep pattern. Starting an already-running
// buzzer or stopping a stopped one is a no-op.
func (o *RealOutputs) SetBuzzer(on bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if on == o.buzzerOn {
		return nil
	}
	o.buzzerOn = on

	if !on {
		close(o.stopBeep)
		<-o.beepDone
		o.stopBeep = nil
		o.beepDone = nil
		return o.buzzer.SetValue(0)
	}

	o.stopBeep = make(chan struct{})
	o.beepDone = make(chan struct{})
	go o.beepLoop(o.stopBeep, o.beepDone)
	return nil
}

// beepLoop toggles the speaker line until stop is closed. SetValue errors
// are ignored here; the next reconciliation retries via SetBuzzer.
func (o *RealOutputs) beepLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(beepOn)
	defer ticker.Stop()

	v := 1
	o.buzzer.SetValue(v)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if v == 1 {
				v = 0
				ticker.Reset(beepOff)
			} else {
				v = 1
				ticker.Reset(beepOn)
			}
			o.buzzer.SetValue(v)
		}
	}
}

// Close stops the buzzer, turns all outputs off, and releases GPIO
// resources.
func (o *RealOutputs) Close() error {
	o.SetBuzzer(false)

	var errs []error
	for sev, line := range o.leds {
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear %s LED: %w", sev, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s LED: %w", sev, err))
		}
	}
	if o.buzzer != nil {
		if err := o.buzzer.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear buzzer: %w", err))
		}
		if err := o.buzzer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close buzzer: %w", err))
		}
	}
	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealButtons watches the MUTE and RESET inputs for falling edges. The
// buttons pull the line to ground when pressed; debouncing is done by the
// kernel via the character device debounce period.
type RealButtons struct {
	chip  *gpiocdev.Chip
	mute  *gpiocdev.Line
	reset *gpiocdev.Line
}

// NewRealButtons requests the button input lines. onMute and onReset are
// invoked once per debounced press, from the gpiocdev event goroutine.
func NewRealButtons(pinMute, pinReset int, debounce time.Duration, onMute, onReset func()) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealButtons{chip: chip}

	b.mute, err = chip.RequestLine(pinMute,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithDebounce(debounce),
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onMute() }))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request mute pin %d: %w", pinMute, err)
	}

	b.reset, err = chip.RequestLine(pinReset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithDebounce(debounce),
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onReset() }))
	if err != nil {
		b.mute.Close()
		chip.Close()
		return nil, fmt.Errorf("request reset pin %d: %w", pinReset, err)
	}

	return b, nil
}

// Close releases the button lines.
func (b *RealButtons) Close() error {
	var errs []error
	if b.mute != nil {
		if err := b.mute.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mute line: %w", err))
		}
	}
	if b.reset != nil {
		if err := b.reset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close reset line: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
