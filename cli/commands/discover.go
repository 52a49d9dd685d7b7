package commands

import (
	"os"

	"github.com/probeherd/probeherd/internal/discover"
	"github.com/spf13/cobra"
)

// creates and returns the "discover" command
func discoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover <host|cidr>...",
		Short: "Scan for hosts worth adding to the inventory",
		Long: "Scans the given hosts or cidr blocks for SNMP and LDAP " +
			"service ports and prints a yaml inventory snippet for the " +
			"hosts that answered. No credentials are probed.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner, err := discover.NewNmapScanner(cmd.Context(), args)

			if err != nil {
				return err
			}

			defer scanner.Stop()

			candidates, err := scanner.Scan()

			if err != nil {
				return err
			}

			return discover.RenderInventory(os.Stdout, candidates)
		},
	}

	return cmd
}
