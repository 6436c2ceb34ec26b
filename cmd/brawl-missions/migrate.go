package main

import (
	"github.com/spf13/cobra"

	"brawl-missions/internal/app"
	"brawl-missions/internal/db"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbConn, err := db.Open(opts.cfg.DB, false, opts.log)
			if err != nil {
				return err
			}
			sqlDB, err := dbConn.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := app.Migrate(opts.cfg, dbConn, opts.log); err != nil {
				opts.log.Critical("db: migration failed", "err", err)
				return err
			}
			opts.log.Info("db: migrations applied")
			return nil
		},
	}
}
