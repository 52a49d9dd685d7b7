package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/probeherd/probeherd/internal/probe"
	"github.com/probeherd/probeherd/internal/report"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func sampleResults() []*probe.Result {
	return []*probe.Result{
		{
			TargetID: "alpha",
			Label:    "Alpha router",
			Probe:    "snmpv1 get mib-2 system",
			Outcome:  probe.OutcomeSuccess,
			Output:   "sysName: alpha\nsysLocation: rack 4",
			Duration: 120 * time.Millisecond,
			Metadata: map[string]string{"sysName": "alpha"},
		},
		{
			TargetID: "beta",
			Label:    "Beta router",
			Probe:    "snmpv1 get mib-2 system",
			Outcome:  probe.OutcomeFailure,
			Error:    "probe timed out after 5s",
			TimedOut: true,
			Duration: 5 * time.Second,
		},
	}
}

func TestWriter(t *testing.T) {
	t.Run("writes one labeled text block per target in order", func(st *testing.T) {
		buf := &bytes.Buffer{}

		err := report.NewWriter(buf).WriteText(sampleResults())

		assert.NoError(st, err)

		out := buf.String()

		assert.Equal(st, 1, strings.Count(out, "[+] alpha (Alpha router)"))
		assert.Equal(st, 1, strings.Count(out, "[-] beta (Beta router)"))
		assert.Less(st, strings.Index(out, "alpha"), strings.Index(out, "beta"))
		assert.Contains(st, out, "operation: snmpv1 get mib-2 system")
		assert.Contains(st, out, "sysLocation: rack 4")
		assert.Contains(st, out, "ERROR: probe timed out after 5s")
		assert.Contains(st, out, "1 succeeded, 1 failed, 2 targets")
	})

	t.Run("json output reconstructs the same target outcomes", func(st *testing.T) {
		results := sampleResults()

		buf := &bytes.Buffer{}

		err := report.NewWriter(buf).WriteJSON(results)

		assert.NoError(st, err)

		parsed := []report.JSONResult{}

		err = json.Unmarshal(buf.Bytes(), &parsed)

		assert.NoError(st, err)
		assert.Equal(st, len(results), len(parsed))

		for i, r := range results {
			assert.Equal(st, r.TargetID, parsed[i].ID)
			assert.Equal(st, string(r.Outcome), parsed[i].Outcome)
			assert.Equal(st, r.TimedOut, parsed[i].TimedOut)
			assert.Equal(st, r.Duration.Milliseconds(), parsed[i].DurationMS)
		}
	})

	t.Run("round-trips stored runs through the same renderers", func(st *testing.T) {
		run := &report.Run{
			ID:    "run-1",
			Probe: "ldap anonymous bind",
			Results: []report.RunResult{
				{
					TargetID:   "dir1",
					Label:      "Directory one",
					Outcome:    "success",
					Output:     "anonymous bind accepted",
					DurationMS: 80,
					Metadata:   datatypes.JSON([]byte(`{"vendorName":"OpenLDAP"}`)),
				},
			},
		}

		results, err := report.RunToResults(run)

		assert.NoError(st, err)
		assert.Equal(st, 1, len(results))
		assert.Equal(st, "dir1", results[0].TargetID)
		assert.Equal(st, probe.OutcomeSuccess, results[0].Outcome)
		assert.Equal(st, "ldap anonymous bind", results[0].Probe)
		assert.Equal(st, "OpenLDAP", results[0].Metadata["vendorName"])

		buf := &bytes.Buffer{}

		err = report.NewWriter(buf).WriteText(results)

		assert.NoError(st, err)
		assert.Contains(st, buf.String(), "[+] dir1 (Directory one)")
	})
}
