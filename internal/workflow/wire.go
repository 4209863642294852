package workflow

import (
	"vercel-deploy/internal/config"
	"vercel-deploy/internal/deployer"
	"vercel-deploy/internal/provision"
	"vercel-deploy/internal/vercel"
	"vercel-deploy/internal/vercelcli"
)

// NewDeps builds the production collaborators from cfg. When withCLI is set the
// Vercel CLI is located up front, so a missing tool fails before any API call.
func NewDeps(cfg *config.Config, withCLI bool) (Deps, error) {
	if err := cfg.Validate(); err != nil {
		return Deps{}, err
	}

	client := vercel.NewClient(cfg.Token, cfg.TeamID,
		vercel.WithBaseURL(cfg.APIURL),
		vercel.WithTimeout(cfg.HTTPTimeout),
	)
	deps := Deps{
		Projects: provision.NewProjects(client),
		Domains:  provision.NewDomains(client, cfg.ApexDomain),
	}
	if !withCLI {
		return deps, nil
	}

	bin, err := vercelcli.NewLocator(cfg.CLIPath).Resolve()
	if err != nil {
		return Deps{}, err
	}
	deps.Deployer = deployer.New(vercelcli.NewRunner(bin, cfg.Token), cfg.TeamID, cfg.SourceDir)
	return deps, nil
}
