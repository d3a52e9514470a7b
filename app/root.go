// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/db"
	"github.com/fortuna-social/settings-service/internal/logger"
)

var (
	configPath string // Path to the directory holding main.toml

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "settings-service",
		Short: "settings-service stores the settings and pricing of the fortune telling app",
		Long: `settings-service stores keyed settings, the fortune pricing and the wallet settings
of the fortune telling app. Reads fall back to defaults, writes require an admin.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err //nolint:wrapcheck
			}

			return logger.Init(cfg.Log) //nolint:wrapcheck
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "directory of main.toml (default ./etc/)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openDB opens the configured database and brings its schema up to date.
func openDB() (*gorm.DB, error) {
	gormDB, err := db.Open(&cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return gormDB, db.Migrate(gormDB) //nolint:wrapcheck
}
