package commands

import (
	"github.com/probeherd/probeherd/internal/probe"
	"github.com/spf13/cobra"
)

// creates and returns the "snmp" command
func snmp(flags *runnerFlags) *cobra.Command {
	var port uint16

	cmd := &cobra.Command{
		Use:   "snmp",
		Short: "Check each target's SNMP community string",
		Long: "Issues an SNMPv1 GET for the MIB-II system OIDs against every " +
			"target using the target's community credential (public when " +
			"unset). A target succeeds when at least one OID answers.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeProbe(cmd, flags, probe.NewSNMPProbe(port))
		},
	}

	cmd.Flags().Uint16Var(
		&port,
		"port",
		probe.DefaultSNMPPort,
		"fallback agent port for targets without one",
	)

	return cmd
}
