package discover

import (
	"context"
	"strings"

	"github.com/Ullaakut/nmap/v3"
	"github.com/probeherd/probeherd/internal/logger"
	"github.com/probeherd/probeherd/internal/util"
	"github.com/projectdiscovery/mapcidr"
)

const (
	snmpPort  uint16 = 161
	ldapPort  uint16 = 389
	ldapsPort uint16 = 636
)

// Candidate represents a host exposing a probe-able service port
type Candidate struct {
	Host  string
	Ports []uint16
}

// SNMP returns true if the host answered on the snmp port
func (c *Candidate) SNMP() bool {
	return util.SliceIncludes(c.Ports, snmpPort)
}

// LDAP returns true if the host answered on an ldap port
func (c *Candidate) LDAP() bool {
	return util.SliceIncludes(c.Ports, ldapPort) ||
		util.SliceIncludes(c.Ports, ldapsPort)
}

// LDAPS returns true if the host answered on the ldap-over-tls port
func (c *Candidate) LDAPS() bool {
	return util.SliceIncludes(c.Ports, ldapsPort)
}

// NmapScanner scans address ranges for SNMP and LDAP service ports and
// suggests inventory entries for the hosts it finds
type NmapScanner struct {
	ctx     context.Context
	cancel  context.CancelFunc
	scanner *nmap.Scanner
	log     logger.Logger
}

// NewNmapScanner returns a scanner for the given targets. Targets may
// be plain hosts or cidr blocks; cidr blocks are expanded to
// individual addresses.
func NewNmapScanner(ctx context.Context, targets []string) (*NmapScanner, error) {
	log := logger.New()

	ips, err := expandTargets(targets)

	if err != nil {
		return nil, err
	}

	// Use a cancelable context so we can properly cleanup when needed
	ctxWithCancel, cancel := context.WithCancel(ctx)

	scanner, err := nmap.NewScanner(
		ctxWithCancel,
		nmap.WithTargets(ips...),
		nmap.WithPorts("U:161,T:389,636"),
		nmap.WithUDPScan(),
		nmap.WithConnectScan(),
		nmap.WithTimingTemplate(nmap.TimingFastest),
	)

	if err != nil {
		cancel()
		return nil, err
	}

	return &NmapScanner{
		ctx:     ctxWithCancel,
		cancel:  cancel,
		scanner: scanner,
		log:     log,
	}, nil
}

// Stop stops scanning. Once called this scanner will be useless, a new
// one will need to be instantiated to continue scanning.
func (s *NmapScanner) Stop() {
	s.cancel()
}

// Scan runs the port scan and returns candidates for hosts with at
// least one relevant open port
func (s *NmapScanner) Scan() ([]*Candidate, error) {
	s.log.Info().Msg("Scanning for probe-able services...")

	result, warnings, err := s.scanner.Run()

	if warnings != nil && len(*warnings) > 0 {
		s.log.Warn().
			Str("warnings", strings.Join(*warnings, "; ")).
			Msg("encountered scan warnings")
	}

	if err != nil {
		s.log.Error().Err(err).Msg("encountered scan error")
		return nil, err
	}

	candidates := []*Candidate{}

	for _, host := range result.Hosts {
		if len(host.Addresses) == 0 {
			continue
		}

		ip := host.Addresses[0].String()

		if ip == "" {
			continue
		}

		ports := []uint16{}

		for _, port := range host.Ports {
			if port.Status() == nmap.Open {
				ports = append(ports, port.ID)
			}
		}

		if len(ports) == 0 {
			continue
		}

		s.log.Info().
			Str("ip", ip).
			Int("openPorts", len(ports)).
			Msg("found candidate host")

		candidates = append(candidates, &Candidate{
			Host:  ip,
			Ports: ports,
		})
	}

	return candidates, nil
}

// expandTargets expands any cidr blocks into individual ip addresses
func expandTargets(targets []string) ([]string, error) {
	ips := []string{}

	for _, t := range targets {
		if strings.Contains(t, "/") {
			expanded, err := mapcidr.IPAddresses(t)

			if err != nil {
				return nil, err
			}

			ips = append(ips, expanded...)
		} else {
			ips = append(ips, t)
		}
	}

	return ips, nil
}
