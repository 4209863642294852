// Package workflow sequences a full deploy: ensure project, bind domains,
// report their status, deploy, alias. Each step gates the next only through
// its error; nothing is retried or rolled back.
package workflow

import (
	"context"
	"fmt"

	"vercel-deploy/internal/config"
	"vercel-deploy/internal/logger"
	"vercel-deploy/internal/vercel"
)

// ProjectEnsurer ensures the project exists.
type ProjectEnsurer interface {
	EnsureProject(ctx context.Context, name, framework string) (vercel.Project, error)
}

// DomainManager binds domains and reads their status.
type DomainManager interface {
	EnsureBound(ctx context.Context, projectID, domain string) error
	CheckStatus(ctx context.Context, domain string) *vercel.DomainStatus
}

// Releaser deploys the frontend and aliases the result.
type Releaser interface {
	Deploy(ctx context.Context) (string, error)
	SetAlias(ctx context.Context, deploymentURL, domain string) error
}

// Deps are the collaborators of a run. Deployer may be nil for steps that
// only touch the API.
type Deps struct {
	Projects ProjectEnsurer
	Domains  DomainManager
	Deployer Releaser
}

// Result summarizes a finished run.
type Result struct {
	Project       vercel.Project
	Statuses      map[string]*vercel.DomainStatus
	DeploymentURL string
	Aliased       []string
}

// Run executes the whole workflow.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Deployer == nil {
		return nil, fmt.Errorf("deploy requires the Vercel CLI")
	}

	res := &Result{}

	project, err := BindDomains(ctx, cfg, deps)
	if err != nil {
		return nil, err
	}
	res.Project = project

	res.Statuses = CheckStatuses(ctx, cfg, deps)

	url, err := deps.Deployer.Deploy(ctx)
	if err != nil {
		return res, err
	}
	res.DeploymentURL = url

	aliased, err := AliasAll(ctx, cfg, deps, url)
	res.Aliased = aliased
	if err != nil {
		return res, err
	}

	logger.Info("\n🎯 Done. Check in a private window: https://%s\n", cfg.ApexDomain)
	return res, nil
}

// EnsureProject ensures the configured project exists.
func EnsureProject(ctx context.Context, cfg *config.Config, deps Deps) (vercel.Project, error) {
	return deps.Projects.EnsureProject(ctx, cfg.ProjectName, cfg.Framework)
}

// BindDomains ensures the project and binds the apex and www domains to it, in that order.
func BindDomains(ctx context.Context, cfg *config.Config, deps Deps) (vercel.Project, error) {
	project, err := EnsureProject(ctx, cfg, deps)
	if err != nil {
		return vercel.Project{}, err
	}
	for _, domain := range cfg.Domains() {
		if err := deps.Domains.EnsureBound(ctx, project.ID, domain); err != nil {
			return project, err
		}
	}
	return project, nil
}

// CheckStatuses reads the status of every domain. Failed reads map to nil.
func CheckStatuses(ctx context.Context, cfg *config.Config, deps Deps) map[string]*vercel.DomainStatus {
	statuses := make(map[string]*vercel.DomainStatus, 2)
	for _, domain := range cfg.Domains() {
		statuses[domain] = deps.Domains.CheckStatus(ctx, domain)
	}
	return statuses
}

// AliasAll assigns every domain to deploymentURL and returns the domains aliased so far.
func AliasAll(ctx context.Context, cfg *config.Config, deps Deps, deploymentURL string) ([]string, error) {
	var aliased []string
	for _, domain := range cfg.Domains() {
		if err := deps.Deployer.SetAlias(ctx, deploymentURL, domain); err != nil {
			return aliased, err
		}
		aliased = append(aliased, domain)
	}
	return aliased, nil
}
