// Command feedback serves the health tracking API.
package main

import (
	"fmt"
	"os"

	"feedback/internal/config"
	"feedback/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	v          = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Personal health tracking backend",
	Long: `feedback stores blood pressure, points and weight measurements per user
and serves them over a REST API.

Settings come from flags, environment variables (ADDR, DATABASE_URL, ...)
and an optional config file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("store", config.StorePostgres, "storage backend: postgres or memory")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")
	_ = v.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = v.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every subcommand uses.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}
