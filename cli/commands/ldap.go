package commands

import (
	"github.com/probeherd/probeherd/internal/probe"
	"github.com/spf13/cobra"
)

// creates and returns the "ldap" command
func ldap(flags *runnerFlags) *cobra.Command {
	var useLDAPS bool
	var useStartTLS bool

	cmd := &cobra.Command{
		Use:   "ldap",
		Short: "Check each target's directory for anonymous bind",
		Long: "Attempts an unauthenticated LDAP bind against every target. " +
			"On success the root DSE is read for server metadata " +
			"(naming contexts, SASL mechanisms, vendor).",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := probe.NewLDAPProbe(useLDAPS, useStartTLS)

			if err != nil {
				return err
			}

			return executeProbe(cmd, flags, p)
		},
	}

	cmd.Flags().BoolVar(&useLDAPS, "ldaps", false, "connect over tls (port 636)")
	cmd.Flags().BoolVar(&useStartTLS, "starttls", false, "upgrade the connection with starttls")

	return cmd
}
