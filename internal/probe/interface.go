package probe

import (
	"context"

	"github.com/probeherd/probeherd/internal/config"
)

//go:generate mockgen -destination=../mock/probe/mock_probe.go -package=mock_probe . Probe

// Probe is the capability executed once per target. Implementations
// return a result when they produced output worth reporting, and an
// error when execution failed. The runner owns outcome classification,
// so implementations never abort a run.
type Probe interface {
	// Describe returns a short human readable description of the
	// operation attempted against each target
	Describe() string
	// Execute performs one probe operation against a single target.
	// A returned result may accompany a non-nil error, e.g. partial
	// command output from a failed command.
	Execute(ctx context.Context, target config.Target) (*Result, error)
}
