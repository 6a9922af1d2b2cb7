package main

import (
	"fmt"

	"github.com/KartikTulsian/karyasetu/internal/config"
	"github.com/KartikTulsian/karyasetu/internal/database"

	"github.com/spf13/cobra"
)

const defaultMigrationsPath = "migrations"

func migrateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema with SQL migrations",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Migrations directory (defaults to MIGRATIONS_PATH or ./migrations)")

	resolve := func() (*config.Config, string, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, "", err
		}
		switch {
		case path != "":
			return cfg, path, nil
		case cfg.MigrationsPath != "":
			return cfg, cfg.MigrationsPath, nil
		default:
			return cfg, defaultMigrationsPath, nil
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := resolve()
			if err != nil {
				return err
			}
			return database.RunMigrations(cfg.DatabaseURL, dir)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := resolve()
			if err != nil {
				return err
			}
			return database.RollbackMigrations(cfg.DatabaseURL, dir, steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := resolve()
			if err != nil {
				return err
			}
			version, dirty, err := database.MigrationVersion(cfg.DatabaseURL, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	})

	return cmd
}
