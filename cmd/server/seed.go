package main

import (
	"fmt"

	"github.com/KartikTulsian/karyasetu/internal/database"
	"github.com/KartikTulsian/karyasetu/internal/repository"
	"github.com/KartikTulsian/karyasetu/internal/seed"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture of users, events and teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.SeedFile
			}

			fixture, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					logrus.WithError(err).Warn("Failed to close database")
				}
			}()

			summary, err := seed.Run(cmd.Context(), repository.NewTransactor(db), fixture)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d events, %d teams, %d participations, %d clubs\n",
				summary.Users, summary.Events, summary.Teams, summary.Participations, summary.Clubs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file (defaults to SEED_FILE)")

	return cmd
}
