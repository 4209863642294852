package cmd

import (
	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration with the token masked.
// It does not require a token, so it can be used to debug a missing one.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(true)
		if err != nil {
			return err
		}
		return cfg.Render(cmd.OutOrStdout())
	},
}
