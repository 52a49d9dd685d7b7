package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// runnerFlags persistent flags shared by all probe commands
type runnerFlags struct {
	inventory      string
	jsonOut        bool
	timeoutSeconds int
}

// Root builds and returns our root command
func Root() *cobra.Command {
	var verbose bool
	var silent bool

	flags := &runnerFlags{}

	cmd := &cobra.Command{
		Use:   "probeherd",
		Short: "Run one probe against every target in a credential inventory",
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			return nil
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().StringVarP(
		&flags.inventory,
		"inventory",
		"i",
		"",
		"path to yaml target inventory",
	)
	cmd.PersistentFlags().BoolVar(
		&flags.jsonOut,
		"json",
		false,
		"emit machine readable json instead of text blocks",
	)
	cmd.PersistentFlags().IntVarP(
		&flags.timeoutSeconds,
		"timeout",
		"t",
		0,
		"per-probe timeout in seconds",
	)
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")

	cmd.AddCommand(run(flags))
	cmd.AddCommand(snmp(flags))
	cmd.AddCommand(ldap(flags))
	cmd.AddCommand(discoverCmd())
	cmd.AddCommand(reportCmd(flags))
	cmd.AddCommand(version())
	cmd.AddCommand(clean())

	return cmd
}
