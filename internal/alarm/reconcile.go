package alarm

import "github.com/sweeney/ups-trap-monitor/internal/catalog"

// TargetState is the desired state of the panel effectors. It has no
// identity of its own: it is recomputed from the registry snapshot and the
// mute flag on every relevant mutation and never mutated independently.
type TargetState struct {
	// Leds holds the target for each severity LED. An LED is on iff an
	// active alarm of that severity exists, regardless of mute.
	Leds map[catalog.Severity]bool
	// Buzzer is on iff an alarm is active and the panel is not muted.
	Buzzer bool
}

// Reconcile computes the effector target state from the current registry
// snapshot and mute flag. Pure function; safe to call redundantly.
//
// The buzzer rule is deliberately not expressible in terms of "what just
// changed": it always reads the current aggregate alarm state, so a mute
// toggle with no active alarm, or a trigger arriving after an unmute,
// both land in the correct state without special cases.
func Reconcile(snap Snapshot, muted bool) TargetState {
	return TargetState{
		Leds: map[catalog.Severity]bool{
			catalog.SeverityCritical: snap.Severities[catalog.SeverityCritical],
			catalog.SeverityWarning:  snap.Severities[catalog.SeverityWarning],
			catalog.SeverityInfo:     snap.Severities[catalog.SeverityInfo],
		},
		Buzzer: !muted && snap.IsAnyActive(),
	}
}
