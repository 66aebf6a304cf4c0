// Package cli holds the holocron cobra commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"holocron/config"
	"holocron/internal/database"
	"holocron/internal/logger"
)

var (
	configPath string
	logLevel   string
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "holocron",
		Short:         "Holocron - favorites API over a Star Wars catalog",
		Long:          `Holocron serves users, characters, planets and vehicles over HTTP and keeps each user's favorites.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logger.level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./config.yaml or ./configs/config.yaml)")

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
	)
	return root
}

// bootstrap loads config, installs the logger and opens the database.
func bootstrap() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.Init(&cfg.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if logLevel != "" {
		logger.SetLevel(logger.ParseLevel(logLevel))
	}
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}
