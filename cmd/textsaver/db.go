package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/textsaver/internal/activity"
	"github.com/at-ishikawa/textsaver/internal/cli"
	"github.com/at-ishikawa/textsaver/internal/config"
	"github.com/at-ishikawa/textsaver/internal/database"
)

func newDBCommand() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect and migrate the database",
	}
	dbCmd.PersistentFlags().String("database-path", "", "sqlite database file (overrides DATABASE_PATH)")

	dbCmd.AddCommand(
		newDBViewCommand(),
		newDBMigrateCommand(),
	)
	return dbCmd
}

func newDBViewCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print every stored ask and suggestion",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			viewer := cli.NewDBViewer(activity.NewDBRepository(db), cmd.OutOrStdout())
			return viewer.View(cmd.Context(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", cli.FormatText, "output format: text, yaml or json")
	return cmd
}

func newDBMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Add missing columns and print the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			migrator := cli.NewSchemaMigrator(activity.NewDBRepository(db), cmd.OutOrStdout())
			return migrator.Migrate(cmd.Context())
		},
	}
}

func openDatabase(cmd *cobra.Command) (*sqlx.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("loadConfig() > %w", err)
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	return db, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	if err := loader.BindFlags(cmd.Flags(), map[string]string{
		"database.path": "database-path",
	}); err != nil {
		return nil, fmt.Errorf("loader.BindFlags() > %w", err)
	}
	return loader.Load()
}
