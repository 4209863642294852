package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"vercel-deploy/internal/config"
	"vercel-deploy/internal/logger"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath is an optional YAML or .env file, passed via `--config` or `-c`.
// When empty, ./.env is read if present.
var configPath string

// rootCmd is the base command for the CLI tool `vercel-deploy`.
var rootCmd = &cobra.Command{
	Use:   "vercel-deploy",
	Short: "Deploy a frontend to Vercel and point its domains at it",

	SilenceUsage:  true,
	SilenceErrors: true,

	// Initialize the logger before any subcommand runs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// init registers the global flags and the top-level commands.
func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML or .env configuration file")

	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the CLI. Any error is printed once and terminates the process with status 1.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("❌ %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration and, unless skipValidation is set,
// checks the token before anything touches the network or spawns a process.
func loadConfig(skipValidation bool) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger.Plain("TEAM_ID: %s\n", cfg.TeamID)
	logger.Plain("TOKEN: %s\n", cfg.MaskedToken())
	logger.Plain("FRONTEND_DIR: %s\n", cfg.SourceDir)

	if skipValidation {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
