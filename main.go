package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path"

	"github.com/probeherd/probeherd/cli/commands"
	app_info "github.com/probeherd/probeherd/internal/app-info"
	"github.com/probeherd/probeherd/internal/logger"
	"github.com/spf13/viper"
)

/**
 * Main entry point for all commands
 * Here we setup environment config via viper
 */

func setRunTimeConfig() error {
	userHomeDir, err := os.UserHomeDir()

	if err != nil {
		return err
	}

	configDir := path.Join(userHomeDir, ".config", app_info.NAME)

	if err := os.MkdirAll(configDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	logFile := path.Join(configDir, app_info.NAME+".log")

	dbFile := path.Join(configDir, app_info.NAME+".db")

	inventoryFile := path.Join(configDir, "inventory.yml")

	// share run-time config globally using viper
	viper.Set("log-file", logFile)
	viper.Set("config-dir", configDir)
	viper.Set("database-file", dbFile)
	viper.Set("inventory-path", inventoryFile)

	return nil
}

// Entry point for the cli
func main() {
	log := logger.New()

	err := setRunTimeConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	// a user interrupt terminates the run immediately, partial
	// results are discarded
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Get the "root" cobra cli command
	cmd := commands.Root()

	// execute the cobra command and exit with error code if necessary
	err = cmd.ExecuteContext(ctx)

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
