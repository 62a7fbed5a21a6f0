// Package snmp receives SNMP trap datagrams and reduces them to numeric
// condition codes plus varbinds. Everything past that boundary (catalog
// lookup, registry, effectors) belongs to the monitor.
package snmp

import (
	"strconv"
	"strings"
)

// Enterprise trap group bases. The MIB defines the trap group under
// atsAgent(3); some firmware revisions send the same traps under
// atsAgent(2).
const (
	TrapBase       = "1.3.6.1.4.1.37662.1.2.3.1.2"
	TrapBaseAgent2 = "1.3.6.1.4.1.37662.1.2.2.1.2"
)

// snmpTrapOID.0, the varbind carrying the trap OID in v2c notifications.
const snmpTrapOID = "1.3.6.1.6.3.1.1.4.1.0"

// Agent-2 firmware renumbers some resumption traps relative to the MIB.
// Verified against device logs: the plain codes 17-19 and the zero-infix
// code 16 arrive shifted by two positions.
var agent2Remap = map[int]int{
	17: 19, // reported as Source A voltage normal
	18: 20, // reported as Source B voltage normal
	19: 21, // reported as Source A frequency normal
}

// NormalizeTrapOID extracts the condition code from a trap OID. It
// accepts both agent bases, an optional leading dot, and the optional
// ".0." infix some firmware inserts before the code. Returns false for
// OIDs outside the enterprise trap groups.
func NormalizeTrapOID(oid string) (int, bool) {
	oid = strings.TrimPrefix(oid, ".")

	agent2 := false
	var rest string
	switch {
	case strings.HasPrefix(oid, TrapBase+"."):
		rest = strings.TrimPrefix(oid, TrapBase+".")
	case strings.HasPrefix(oid, TrapBaseAgent2+"."):
		agent2 = true
		rest = strings.TrimPrefix(oid, TrapBaseAgent2+".")
	default:
		return 0, false
	}

	zeroInfix := false
	if strings.HasPrefix(rest, "0.") {
		zeroInfix = true
		rest = strings.TrimPrefix(rest, "0.")
	}

	code, err := strconv.Atoi(rest)
	if err != nil || code <= 0 {
		return 0, false
	}

	if agent2 {
		if zeroInfix && code == 16 {
			// Device sends trap 16 with an "ATS Normal" message here.
			return 18, true
		}
		if mapped, ok := agent2Remap[code]; ok {
			return mapped, true
		}
	}

	return code, true
}
