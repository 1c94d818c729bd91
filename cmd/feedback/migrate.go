package main

import (
	"errors"

	"feedback/internal/adapter/postgres"
	"feedback/internal/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		if cfg.Store != config.StorePostgres {
			return errors.New("migrate requires the postgres store")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Open migrates before returning.
		db, err := postgres.Open(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		log.Info("migrations applied")
		return nil
	},
}
