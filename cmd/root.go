package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/data-triage/pkg/config"
	"github.com/David-Botos/data-triage/pkg/logger"
)

var (
	cfgFile      string
	flagLogLevel string

	// Loaded configuration and root logger, available to all subcommands
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "datatriage",
	Short: "Detect and fix data-quality issues in tabular datasets",
	Long: `datatriage profiles tabular datasets for quality defects (missing values,
duplicates, outliers, mistyped and inconsistently cased columns), proposes
remediation strategies, and applies the ones you pick - either explicitly or
through short free-text commands like "fix all missing values".`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./datatriage.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = &config.Config{LogLevel: "info", LogFormat: "console", OutputDir: "out"}
	}

	level := cfg.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	log, err = logger.New(level, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to build logger: %v\n", err)
		log = zap.NewNop()
	}
}
