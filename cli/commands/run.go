package commands

import (
	"github.com/probeherd/probeherd/internal/probe"
	"github.com/spf13/cobra"
)

// creates and returns the "run" command
func run(flags *runnerFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a command against every target with scoped credentials",
		Long: "Runs the given command once per target with the target's " +
			"credentials exposed as environment variable overrides on the " +
			"child process. Success is a zero exit code. A failing target " +
			"never stops the run.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := probe.NewCommandProbe(args)

			if err != nil {
				return err
			}

			return executeProbe(cmd, flags, p)
		},
	}

	return cmd
}
