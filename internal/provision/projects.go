// Package provision ensures the remote Vercel resources a deploy needs exist:
// the project and the domains bound to it. Every operation is idempotent;
// existing resources are returned untouched and never reconciled.
package provision

import (
	"context"
	"fmt"

	"vercel-deploy/internal/logger"
	"vercel-deploy/internal/vercel"
)

// ProjectAPI is the subset of the Vercel client used for projects.
type ProjectAPI interface {
	ListProjects(ctx context.Context) ([]vercel.Project, error)
	CreateProject(ctx context.Context, name, framework string) (vercel.Project, error)
}

// Projects manages the project resource.
type Projects struct {
	api ProjectAPI
}

// NewProjects returns a project manager backed by api.
func NewProjects(api ProjectAPI) *Projects {
	return &Projects{api: api}
}

// EnsureProject returns the project called name, creating it with framework when absent.
func (p *Projects) EnsureProject(ctx context.Context, name, framework string) (vercel.Project, error) {
	projects, err := p.api.ListProjects(ctx)
	if err != nil {
		return vercel.Project{}, fmt.Errorf("failed to list projects: %w", err)
	}

	// Exact name match only
	for _, existing := range projects {
		if existing.Name == name {
			logger.Info("✅ Project exists: %s (%s)\n", existing.ID, name)
			return existing, nil
		}
	}

	// Not found, create it
	logger.Info("📦 Creating project %s (framework %s)...\n", name, framework)
	created, err := p.api.CreateProject(ctx, name, framework)
	if err != nil {
		return vercel.Project{}, fmt.Errorf("failed to create project %s: %w", name, err)
	}
	logger.Info("✅ Project created: %s\n", created.ID)
	return created, nil
}
