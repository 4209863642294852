// Package deployer drives the Vercel CLI: a production deploy of the frontend
// source followed by alias assignment of the resulting URL.
package deployer

import (
	"context"
	"fmt"

	"vercel-deploy/internal/archive"
	"vercel-deploy/internal/logger"
	"vercel-deploy/internal/vercelcli"
)

// ErrSourceNotFound is returned when the frontend source is missing.
var ErrSourceNotFound = archive.ErrSourceNotFound

// Deployer deploys one source directory (or archive) into one team scope.
type Deployer struct {
	exec      vercelcli.Executor
	extractor URLExtractor
	teamID    string
	source    string
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithExtractor replaces the default regex URL scraper.
func WithExtractor(e URLExtractor) Option {
	return func(d *Deployer) { d.extractor = e }
}

// New returns a Deployer that runs the CLI through exec.
func New(exec vercelcli.Executor, teamID, source string, opts ...Option) *Deployer {
	d := &Deployer{
		exec:      exec,
		extractor: RegexExtractor{Pattern: DeploymentURLPattern},
		teamID:    teamID,
		source:    source,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeployArgs are the CLI arguments of a non-interactive production deploy.
func DeployArgs(teamID string) []string {
	return []string{"--prod", "--scope", teamID, "--yes"}
}

// AliasArgs are the CLI arguments assigning domain to deploymentURL.
func AliasArgs(deploymentURL, domain, teamID string) []string {
	return []string{"alias", "set", deploymentURL, domain, "--scope", teamID}
}

// Deploy runs a production deployment and returns its URL.
// A temporary extraction of an archived source is removed before Deploy returns.
func (d *Deployer) Deploy(ctx context.Context) (string, error) {
	logger.Info("📁 FRONTEND_DIR = %s\n", d.source)

	// Resolve the source; archives are unpacked into a temp dir
	src, err := archive.Prepare(d.source)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.Warn("⚠️  %v\n", cerr)
		}
	}()

	logger.Info("🚀 Deploying to production with the Vercel CLI...\n")
	res, err := d.exec.Run(ctx, src.Dir, DeployArgs(d.teamID)...)
	if err != nil {
		return "", fmt.Errorf("production deploy failed: %w", err)
	}

	// Scrape the deployment URL from the captured output
	url, err := d.extractor.Extract(res)
	if err != nil {
		return "", err
	}
	logger.Info("✅ Deployment URL: %s\n", url)
	return url, nil
}

// SetAlias points domain at deploymentURL. It is always re-issued; the
// platform keeps the last assignment.
func (d *Deployer) SetAlias(ctx context.Context, deploymentURL, domain string) error {
	logger.Info("🔗 Assigning alias %s ...\n", domain)
	if _, err := d.exec.Run(ctx, "", AliasArgs(deploymentURL, domain, d.teamID)...); err != nil {
		return fmt.Errorf("failed to alias %s to %s: %w", domain, deploymentURL, err)
	}
	return nil
}
