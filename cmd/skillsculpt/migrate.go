package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/skillsculpt/internal/config"
	"github.com/jonathan/skillsculpt/internal/db"
	"github.com/jonathan/skillsculpt/internal/logging"
	"github.com/spf13/cobra"
)

var migratePrint bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  "Applies the embedded schema to DATABASE_URL. Statements are idempotent and safe to run on every deploy.",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migratePrint, "print", false, "Print the schema instead of applying it")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migratePrint {
		_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema())
		return err
	}

	// Only the database and logging settings matter here, so the full
	// provider validation in config.Load is not applied.
	databaseURL, err := config.DatabaseURL(configFile)
	if err != nil {
		return err
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	logger, err := logging.New("info", logging.FormatText)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	logger.Info("database schema is up to date")
	return nil
}
