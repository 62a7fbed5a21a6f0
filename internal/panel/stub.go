//go:build !linux

package panel

import (
	"errors"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// RealOutputs is not available on non-Linux platforms.
type RealOutputs struct{}

// NewRealOutputs returns an error on non-Linux platforms.
func NewRealOutputs(OutputPins) (*RealOutputs, error) {
	return nil, errors.New("panel: not supported on this platform (requires Linux)")
}

// SetLed is not implemented on non-Linux platforms.
func (o *RealOutputs) SetLed(catalog.Severity, bool) error {
	return errors.New("panel: not supported")
}

// SetBuzzer is not implemented on non-Linux platforms.
func (o *RealOutputs) SetBuzzer(bool) error {
	return errors.New("panel: not supported")
}

// Close is not implemented on non-Linux platforms.
func (o *RealOutputs) Close() error { return nil }

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(int, int, time.Duration, func(), func()) (*RealButtons, error) {
	return nil, errors.New("panel: not supported on this platform (requires Linux)")
}

// Close is not implemented on non-Linux platforms.
func (b *RealButtons) Close() error { return nil }
