package commands

import (
	"fmt"
	"os"

	"github.com/probeherd/probeherd/internal/report"
	"github.com/spf13/cobra"
)

// creates and returns the "report" command
func reportCmd(flags *runnerFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "List stored runs or replay one run's report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := historyService()

			if err != nil {
				return err
			}

			if len(args) == 0 {
				return listRuns(service)
			}

			return replayRun(service, flags, args[0])
		},
	}

	return cmd
}

func listRuns(service report.Service) error {
	runs, err := service.ListRuns()

	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	for _, run := range runs {
		fmt.Printf(
			"%s  %s  %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Probe,
		)
	}

	return nil
}

func replayRun(service report.Service, flags *runnerFlags, id string) error {
	run, err := service.GetRun(id)

	if err != nil {
		return err
	}

	results, err := report.RunToResults(run)

	if err != nil {
		return err
	}

	writer := report.NewWriter(os.Stdout)

	if flags.jsonOut {
		return writer.WriteJSON(results)
	}

	return writer.WriteText(results)
}
