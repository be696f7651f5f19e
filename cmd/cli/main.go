package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/cmd/cli/commands"
	"github.com/stroke-rate/boathouse/internal/config"
	"github.com/stroke-rate/boathouse/pkg/core/usagelog"
	"github.com/stroke-rate/boathouse/pkg/postgres"
	"github.com/stroke-rate/boathouse/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	app = &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "boathouse",
		Short: "Boathouse CLI - Manage fleet readiness and lineups",
		Long:  `A CLI tool for managing rowing equipment readiness, damage reports, practice planning, and lineups.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if app.Database != nil {
				app.Database.Close()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.FleetStatusCmd(app))
	rootCmd.AddCommand(commands.InspectCmd(app))
	rootCmd.AddCommand(commands.ReportDamageCmd(app))
	rootCmd.AddCommand(commands.PlanPracticesCmd(app))
	rootCmd.AddCommand(commands.ApplyTemplateCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, and the usage log recorder
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Connect to the database
	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Store = app.Database
	app.Logger.Info("Database connection established")

	// Wire the usage log recorder as the boat change sink
	app.Sink = usagelog.NewRecorder(app.Database, app.Logger)

	return nil
}
