package discover

import (
	"fmt"
	"io"
	"strings"

	"github.com/probeherd/probeherd/internal/config"
	"gopkg.in/yaml.v3"
)

// RenderInventory writes candidate hosts as a yaml inventory snippet
// ready to be pasted into a probeherd inventory file. SNMP candidates
// get the standard default community so a first probe run works out of
// the box; ldap candidates need no credentials for an anonymous bind.
func RenderInventory(out io.Writer, candidates []*Candidate) error {
	targets := []config.Target{}

	for _, c := range candidates {
		id := strings.NewReplacer(".", "-", ":", "-").Replace(c.Host)

		if c.SNMP() {
			targets = append(targets, config.Target{
				ID:    "snmp-" + id,
				Label: fmt.Sprintf("snmp agent at %s", c.Host),
				Host:  c.Host,
				Port:  snmpPort,
				Credentials: map[string]string{
					"community": "public",
				},
			})
		}

		if c.LDAP() {
			port := ldapPort

			if c.LDAPS() {
				port = ldapsPort
			}

			targets = append(targets, config.Target{
				ID:    "ldap-" + id,
				Label: fmt.Sprintf("directory at %s", c.Host),
				Host:  c.Host,
				Port:  port,
			})
		}
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)

	defer encoder.Close()

	return encoder.Encode(config.Inventory{Targets: targets})
}
