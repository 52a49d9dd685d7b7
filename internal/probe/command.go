package probe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/probeherd/probeherd/internal/config"
	"github.com/probeherd/probeherd/internal/exception"
)

// CommandProbe runs an externally supplied command once per target with
// the target's credentials exposed as environment variable overrides on
// the child process. Credentials are never written to disk. Success is
// a zero exit code.
type CommandProbe struct {
	name string
	args []string
}

// NewCommandProbe returns a command probe for the given argv
func NewCommandProbe(argv []string) (*CommandProbe, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, exception.NewConfigError("no command provided")
	}

	return &CommandProbe{
		name: argv[0],
		args: argv[1:],
	}, nil
}

// Describe returns the command line being run against each target
func (p *CommandProbe) Describe() string {
	return strings.Join(append([]string{p.name}, p.args...), " ")
}

// Execute runs the command with the target's credentials in its
// environment and captures combined stdout and stderr
func (p *CommandProbe) Execute(ctx context.Context, target config.Target) (*Result, error) {
	cmd := exec.CommandContext(ctx, p.name, p.args...)

	cmd.Env = append(os.Environ(), credentialEnv(target)...)

	out, err := cmd.CombinedOutput()

	result := &Result{
		Output: string(out),
	}

	if err != nil {
		return result, fmt.Errorf("command failed: %w", err)
	}

	return result, nil
}

// credentialEnv converts a target's credential map to KEY=value pairs
// in a stable order
func credentialEnv(target config.Target) []string {
	keys := make([]string, 0, len(target.Credentials))

	for key := range target.Credentials {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	env := make([]string, 0, len(keys))

	for _, key := range keys {
		env = append(env, fmt.Sprintf("%s=%s", key, target.Credentials[key]))
	}

	return env
}
