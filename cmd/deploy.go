package cmd

import (
	"github.com/spf13/cobra"

	"vercel-deploy/internal/logger"
	"vercel-deploy/internal/workflow"
)

// deployCmd runs the whole workflow: project, domains, status, deploy, aliases.
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Ensure project and domains, deploy to production and alias both domains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		deps, err := workflow.NewDeps(cfg, true)
		if err != nil {
			return err
		}

		_, err = workflow.Run(cmd.Context(), cfg, deps)
		return err
	},
}

// deployProjectCmd only ensures the project exists.
var deployProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Only ensure the Vercel project exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		deps, err := workflow.NewDeps(cfg, false)
		if err != nil {
			return err
		}

		_, err = workflow.EnsureProject(cmd.Context(), cfg, deps)
		return err
	},
}

// deployDomainsCmd ensures the project and binds both domains to it.
var deployDomainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "Ensure the project and bind the apex and www domains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		deps, err := workflow.NewDeps(cfg, false)
		if err != nil {
			return err
		}

		_, err = workflow.BindDomains(cmd.Context(), cfg, deps)
		return err
	},
}

// deployStatusCmd reports the configuration status of both domains.
var deployStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configuration status of both domains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		deps, err := workflow.NewDeps(cfg, false)
		if err != nil {
			return err
		}

		workflow.CheckStatuses(cmd.Context(), cfg, deps)
		return nil
	},
}

// deployAliasCmd aliases an existing deployment URL to both domains.
var deployAliasCmd = &cobra.Command{
	Use:   "alias <deployment-url>",
	Short: "Point both domains at an existing deployment URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		deps, err := workflow.NewDeps(cfg, true)
		if err != nil {
			return err
		}

		if _, err := workflow.AliasAll(cmd.Context(), cfg, deps, args[0]); err != nil {
			return err
		}
		logger.Info("🎯 %s now serves %s and %s\n", args[0], cfg.ApexDomain, cfg.WWWDomain)
		return nil
	},
}

// init adds the granular subcommands under deploy.
func init() {
	deployCmd.AddCommand(deployProjectCmd)
	deployCmd.AddCommand(deployDomainsCmd)
	deployCmd.AddCommand(deployStatusCmd)
	deployCmd.AddCommand(deployAliasCmd)
}
