package snmp

import (
	"fmt"
	"log"
	"net"
	"time"

	"github.com/gosnmp/gosnmp"
)

// Trap is one normalized inbound notification.
type Trap struct {
	// Code is the condition code extracted from the trap OID.
	Code int
	// OID is the raw trap OID as received, for logging.
	OID string
	// Source is the sender address.
	Source string
	// Variables holds the varbinds as OID → printable value.
	Variables map[string]string
	Timestamp time.Time
}

// Handler consumes normalized traps. It is invoked from the listener
// goroutine and must not block for long.
type Handler func(Trap)

// Listener receives v1/v2c traps over UDP and hands enterprise traps to
// the handler. Datagrams that are not enterprise traps, or that fail the
// community check, are logged and dropped; the listener itself never
// stops on a bad packet.
type Listener struct {
	addr      string
	community string
	handler   Handler
	tl        *gosnmp.TrapListener
	now       func() time.Time
}

// NewListener creates a trap listener bound to addr (host:port). An empty
// community disables the community check.
func NewListener(addr, community string, handler Handler) *Listener {
	l := &Listener{
		addr:      addr,
		community: community,
		handler:   handler,
		now:       time.Now,
	}

	tl := gosnmp.NewTrapListener()
	tl.Params = gosnmp.Default
	tl.OnNewTrap = l.onTrap
	l.tl = tl
	return l
}

// Listen starts receiving traps. It blocks until Close is called.
func (l *Listener) Listen() error {
	log.Printf("snmp: listening for traps on %s", l.addr)
	if err := l.tl.Listen(l.addr); err != nil {
		return fmt.Errorf("trap listen on %s: %w", l.addr, err)
	}
	return nil
}

// Close stops the listener.
func (l *Listener) Close() {
	l.tl.Close()
}

func (l *Listener) onTrap(packet *gosnmp.SnmpPacket, addr *net.UDPAddr) {
	src := ""
	if addr != nil {
		src = addr.IP.String()
	}

	if l.community != "" && packet.Community != l.community {
		log.Printf("snmp: dropping trap from %s: community mismatch", src)
		return
	}

	oid, vars := splitTrap(packet)
	if oid == "" {
		log.Printf("snmp: trap from %s carries no trap OID, dropping", src)
		return
	}

	code, ok := NormalizeTrapOID(oid)
	if !ok {
		log.Printf("snmp: trap %s from %s is outside the enterprise trap group, dropping", oid, src)
		return
	}

	l.handler(Trap{
		Code:      code,
		OID:       oid,
		Source:    src,
		Variables: vars,
		Timestamp: l.now(),
	})
}

// splitTrap extracts the trap OID and the remaining varbinds from a
// packet. For v1 traps the OID is enterprise.0.specific; for v2c it is
// the snmpTrapOID.0 varbind.
func splitTrap(packet *gosnmp.SnmpPacket) (string, map[string]string) {
	vars := make(map[string]string, len(packet.Variables))

	oid := ""
	if packet.Version == gosnmp.Version1 {
		oid = fmt.Sprintf("%s.0.%d", packet.Enterprise, packet.SpecificTrap)
	}

	for _, pdu := range packet.Variables {
		if pdu.Name == snmpTrapOID || pdu.Name == "."+snmpTrapOID {
			if s, ok := pdu.Value.(string); ok {
				oid = s
			}
			continue
		}
		vars[pdu.Name] = formatValue(pdu)
	}

	return oid, vars
}

// formatValue renders a varbind value as printable text.
func formatValue(pdu gosnmp.SnmpPDU) string {
	switch v := pdu.Value.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
