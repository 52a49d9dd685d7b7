package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/probeherd/probeherd/internal/config"
)

// DefaultSNMPPort standard SNMP agent port
const DefaultSNMPPort uint16 = 161

// DefaultCommunity community string tried when the target provides none
const DefaultCommunity = "public"

// standard MIB-II system group, the same set every SNMP enumeration
// tool walks first
var systemOIDs = []struct {
	name string
	oid  string
}{
	{"sysDescr", ".1.3.6.1.2.1.1.1.0"},
	{"sysObjectID", ".1.3.6.1.2.1.1.2.0"},
	{"sysUpTime", ".1.3.6.1.2.1.1.3.0"},
	{"sysContact", ".1.3.6.1.2.1.1.4.0"},
	{"sysName", ".1.3.6.1.2.1.1.5.0"},
	{"sysLocation", ".1.3.6.1.2.1.1.6.0"},
}

// SNMPProbe checks whether a target's community string is accepted by
// issuing SNMPv1 GETs for the MIB-II system OIDs. Success means at
// least one OID returned a value; returned values are collected into
// the result metadata.
type SNMPProbe struct {
	port uint16
}

// NewSNMPProbe returns an SNMP community probe. A zero port falls back
// to 161 for targets that don't specify their own.
func NewSNMPProbe(port uint16) *SNMPProbe {
	if port == 0 {
		port = DefaultSNMPPort
	}

	return &SNMPProbe{port: port}
}

// Describe implements the Probe interface
func (p *SNMPProbe) Describe() string {
	return "snmpv1 get mib-2 system"
}

// Execute implements the Probe interface
func (p *SNMPProbe) Execute(ctx context.Context, target config.Target) (*Result, error) {
	community := target.Credentials["community"]

	if community == "" {
		community = DefaultCommunity
	}

	port := target.Port

	if port == 0 {
		port = p.port
	}

	timeout := 5 * time.Second

	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	client := &gosnmp.GoSNMP{
		Context:   ctx,
		Target:    target.Host,
		Port:      port,
		Community: community,
		Version:   gosnmp.Version1,
		Timeout:   timeout,
		Retries:   1,
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("snmp connect failed: %w", err)
	}

	defer client.Conn.Close()

	metadata, lines := collectSystemValues(client)

	if len(metadata) == 0 {
		return nil, fmt.Errorf(
			"community %q rejected: no values returned for system oids",
			community,
		)
	}

	return &Result{
		Output:   strings.Join(lines, "\n"),
		Metadata: metadata,
	}, nil
}

// snmpGetter captures the subset of the gosnmp client used to request
// one OID at a time
type snmpGetter interface {
	Get(oids []string) (*gosnmp.SnmpPacket, error)
}

// collectSystemValues requests each system OID individually. SNMPv1
// GET is atomic: an agent missing any one requested instance answers
// noSuchName with no values at all, so a combined request would turn a
// single absent OID into a failed community check.
func collectSystemValues(client snmpGetter) (map[string]string, []string) {
	metadata := map[string]string{}
	lines := []string{}

	for _, entry := range systemOIDs {
		packet, err := client.Get([]string{entry.oid})

		if err != nil || packet == nil {
			continue
		}

		if packet.Error != gosnmp.NoError {
			continue
		}

		for _, variable := range packet.Variables {
			value := formatSNMPValue(variable)

			if value == "" {
				continue
			}

			metadata[entry.name] = value
			lines = append(lines, fmt.Sprintf("%s: %s", entry.name, value))
		}
	}

	return metadata, lines
}

// formatSNMPValue renders a PDU value as text, empty string for
// missing-object responses
func formatSNMPValue(pdu gosnmp.SnmpPDU) string {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.Null:
		return ""
	case gosnmp.OctetString:
		raw, ok := pdu.Value.([]byte)
		if !ok {
			return fmt.Sprintf("%v", pdu.Value)
		}
		return string(raw)
	default:
		return fmt.Sprintf("%v", pdu.Value)
	}
}
