package notify

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
)

// Message is one outbound notification.
type Message struct {
	Subject  string
	Body     string
	Severity catalog.Severity
}

// Sender delivers notification messages. Failures are logged by the
// caller and never retried here; a later event for the same condition
// produces a fresh attempt.
type Sender interface {
	Send(msg Message) error
	Close() error
}

// BuildMessage formats the email for a classified event.
func BuildMessage(ev catalog.Event, source string, vars map[string]string, active []string, at time.Time) Message {
	d := ev.Definition

	kind := "Alert"
	if ev.IsResumption() {
		kind = "Recovery"
	}
	subject := fmt.Sprintf("UPS %s [%s]: %s", kind, strings.ToUpper(string(d.Severity)), d.Description)

	var b strings.Builder
	fmt.Fprintf(&b, "Condition: %s\n", d.Identifier)
	fmt.Fprintf(&b, "Severity:  %s\n", d.Severity)
	fmt.Fprintf(&b, "Event:     %s\n", d.Type)
	fmt.Fprintf(&b, "Detail:    %s\n", d.Description)
	fmt.Fprintf(&b, "Time:      %s\n", at.UTC().Format(time.RFC3339))
	if source != "" {
		fmt.Fprintf(&b, "Source:    %s\n", source)
	}
	if len(ev.Clears) > 0 {
		fmt.Fprintf(&b, "Clears:    %s\n", strings.Join(ev.Clears, ", "))
	}

	if len(active) > 0 {
		fmt.Fprintf(&b, "\nActive alarms:\n")
		for _, id := range active {
			fmt.Fprintf(&b, "  - %s\n", id)
		}
	} else {
		fmt.Fprintf(&b, "\nNo alarms active.\n")
	}

	if len(vars) > 0 {
		fmt.Fprintf(&b, "\nTrap variables:\n")
		for _, oid := range sortedKeys(vars) {
			fmt.Fprintf(&b, "  %s = %s\n", oid, vars[oid])
		}
	}

	return Message{Subject: subject, Body: b.String(), Severity: d.Severity}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
