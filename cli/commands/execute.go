package commands

import (
	"os"
	"time"

	"github.com/probeherd/probeherd/internal/config"
	"github.com/probeherd/probeherd/internal/event"
	"github.com/probeherd/probeherd/internal/logger"
	"github.com/probeherd/probeherd/internal/probe"
	"github.com/probeherd/probeherd/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

/**
 * Shared probe execution pipeline: load inventory, run the probe
 * sequentially over every target, render the aggregated report, and
 * persist the run to history.
 */

// executeProbe drives a full probe run for the given probe variant
func executeProbe(cmd *cobra.Command, flags *runnerFlags, p probe.Probe) error {
	log := logger.New()

	invPath := flags.inventory

	if invPath == "" {
		invPath, _ = viper.Get("inventory-path").(string)
	}

	inv, err := config.LoadInventory(invPath)

	if err != nil {
		return err
	}

	evtManager := event.NewEventManager()

	progress := make(chan event.Event)
	done := make(chan struct{})

	listenerID := evtManager.RegisterListener(event.ProbeStartedEventType, progress)

	go func() {
		for {
			select {
			case evt := <-progress:
				if targetID, ok := evt.Payload.(string); ok {
					log.Info().Str("target", targetID).Msg("probing target")
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		evtManager.RemoveListener(listenerID)
		close(done)
	}()

	timeout := time.Duration(flags.timeoutSeconds) * time.Second

	runner, err := probe.NewRunner(inv.Targets, p, timeout, evtManager)

	if err != nil {
		return err
	}

	startedAt := time.Now()

	results, err := runner.Run(cmd.Context())

	if err != nil {
		return err
	}

	finishedAt := time.Now()

	writer := report.NewWriter(os.Stdout)

	if flags.jsonOut {
		if err := writer.WriteJSON(results); err != nil {
			return err
		}
	} else {
		if err := writer.WriteText(results); err != nil {
			return err
		}
	}

	// per-target failures are already in the report, so a run that
	// completed exits 0 regardless of individual outcomes
	persistRun(p.Describe(), startedAt, finishedAt, results)

	return nil
}

// persistRun saves the run to history. History is best-effort: a
// storage failure is logged, never surfaced as a run failure.
func persistRun(
	probeDesc string,
	startedAt time.Time,
	finishedAt time.Time,
	results []*probe.Result,
) {
	log := logger.New()

	dbFile, ok := viper.Get("database-file").(string)

	if !ok || dbFile == "" {
		return
	}

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		log.Warn().Err(err).Msg("failed to open run history database")
		return
	}

	if err := db.AutoMigrate(&report.Run{}, &report.RunResult{}); err != nil {
		log.Warn().Err(err).Msg("failed to migrate run history database")
		return
	}

	service := report.NewHistoryService(report.NewSqliteRepo(db))

	run, err := service.SaveRun(probeDesc, startedAt, finishedAt, results)

	if err != nil {
		log.Warn().Err(err).Msg("failed to save run history")
		return
	}

	log.Info().Str("runId", run.ID).Msg("run saved to history")
}

// historyService opens the run history database for read commands
func historyService() (report.Service, error) {
	dbFile, _ := viper.Get("database-file").(string)

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&report.Run{}, &report.RunResult{}); err != nil {
		return nil, err
	}

	return report.NewHistoryService(report.NewSqliteRepo(db)), nil
}
