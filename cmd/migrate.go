package cmd

import (
	"github.com/andrewpaige1/kioku-api/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.Connect(cfg.Database, logger)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := config.Migrate(db); err != nil {
			return err
		}
		logger.Info("Migration complete")
		return nil
	},
}
