package probe_test

import (
	"context"
	"testing"
	"time"

	"github.com/probeherd/probeherd/internal/config"
	"github.com/probeherd/probeherd/internal/exception"
	"github.com/probeherd/probeherd/internal/probe"
	"github.com/stretchr/testify/assert"
)

func TestCommandProbe(t *testing.T) {
	target := config.Target{
		ID:    "acct",
		Label: "test account",
		Credentials: map[string]string{
			"PROBE_TOKEN": "sekret",
		},
	}

	t.Run("fails with config error for empty command", func(st *testing.T) {
		_, err := probe.NewCommandProbe([]string{})

		assert.Error(st, err)
		assert.True(st, exception.IsConfigError(err))
	})

	t.Run("describes the command line", func(st *testing.T) {
		p, err := probe.NewCommandProbe([]string{"aws", "sts", "get-caller-identity"})

		assert.NoError(st, err)
		assert.Equal(st, "aws sts get-caller-identity", p.Describe())
	})

	t.Run("exposes credentials as environment overrides", func(st *testing.T) {
		p, err := probe.NewCommandProbe([]string{"sh", "-c", "printf %s \"$PROBE_TOKEN\""})

		assert.NoError(st, err)

		result, err := p.Execute(context.Background(), target)

		assert.NoError(st, err)
		assert.Equal(st, "sekret", result.Output)
	})

	t.Run("captures output of failing commands", func(st *testing.T) {
		p, err := probe.NewCommandProbe([]string{"sh", "-c", "echo denied; exit 3"})

		assert.NoError(st, err)

		result, err := p.Execute(context.Background(), target)

		assert.Error(st, err)
		assert.Contains(st, result.Output, "denied")
	})

	t.Run("classifies non-zero exits as failures through the runner", func(st *testing.T) {
		p, err := probe.NewCommandProbe([]string{"sh", "-c", "exit 1"})

		assert.NoError(st, err)

		runner, err := probe.NewRunner(
			[]config.Target{target},
			p,
			time.Second,
			nil,
		)

		assert.NoError(st, err)

		results, err := runner.Run(context.Background())

		assert.NoError(st, err)
		assert.Equal(st, 1, len(results))
		assert.Equal(st, probe.OutcomeFailure, results[0].Outcome)
		assert.Contains(st, results[0].Error, "command failed")
	})
}

func TestLDAPProbeOptions(t *testing.T) {
	t.Run("rejects ldaps combined with starttls", func(st *testing.T) {
		_, err := probe.NewLDAPProbe(true, true)

		assert.Error(st, err)
		assert.True(st, exception.IsConfigError(err))
	})

	t.Run("describes the bind variant", func(st *testing.T) {
		plain, err := probe.NewLDAPProbe(false, false)

		assert.NoError(st, err)
		assert.Equal(st, "ldap anonymous bind", plain.Describe())

		ldaps, err := probe.NewLDAPProbe(true, false)

		assert.NoError(st, err)
		assert.Equal(st, "ldap anonymous bind (ldaps)", ldaps.Describe())
	})
}
