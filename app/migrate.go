package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(_ *cobra.Command, _ []string) error {
		gormDB, err := openDB()
		if err != nil {
			return err
		}

		log.Info().Str("engine", cfg.DB.GormEngine).Msg("database migrated")

		sqlDB, err := gormDB.DB()
		if err != nil {
			return err //nolint:wrapcheck
		}

		return sqlDB.Close() //nolint:wrapcheck
	},
}
