package discover_test

import (
	"bytes"
	"testing"

	"github.com/probeherd/probeherd/internal/config"
	"github.com/probeherd/probeherd/internal/discover"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestRenderInventory(t *testing.T) {
	t.Run("renders snmp and ldap candidates as inventory entries", func(st *testing.T) {
		candidates := []*discover.Candidate{
			{Host: "10.0.0.5", Ports: []uint16{161}},
			{Host: "10.0.0.9", Ports: []uint16{389, 636}},
		}

		buf := &bytes.Buffer{}

		err := discover.RenderInventory(buf, candidates)

		assert.NoError(st, err)

		var inv config.Inventory

		err = yaml.Unmarshal(buf.Bytes(), &inv)

		assert.NoError(st, err)
		assert.Equal(st, 2, len(inv.Targets))

		snmp := inv.Targets[0]

		assert.Equal(st, "snmp-10-0-0-5", snmp.ID)
		assert.Equal(st, "10.0.0.5", snmp.Host)
		assert.Equal(st, uint16(161), snmp.Port)
		assert.Equal(st, "public", snmp.Credentials["community"])

		ldap := inv.Targets[1]

		assert.Equal(st, "ldap-10-0-0-9", ldap.ID)
		assert.Equal(st, uint16(636), ldap.Port)
		assert.Empty(st, ldap.Credentials)
	})

	t.Run("skips hosts with no relevant ports", func(st *testing.T) {
		buf := &bytes.Buffer{}

		err := discover.RenderInventory(buf, []*discover.Candidate{})

		assert.NoError(st, err)

		var inv config.Inventory

		err = yaml.Unmarshal(buf.Bytes(), &inv)

		assert.NoError(st, err)
		assert.Equal(st, 0, len(inv.Targets))
	})
}
