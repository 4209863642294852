package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingToken is returned by Validate when no Vercel token was configured.
// It is the only mandatory setting.
var ErrMissingToken = errors.New("missing VERCEL_TOKEN (set it in the environment or in .env)")

// Config is the full set of settings for one deploy run.
// It is built once by Load in the entry point and passed by pointer to every component.
// - Token: Vercel API token, also handed to the CLI.
// - TeamID: team slug or id used as ?teamId= and --scope.
// - ProjectName/Framework: project to ensure and the framework preset used on creation.
// - SourceDir: frontend directory (or archive) handed to `vercel --prod`.
// - ApexDomain/WWWDomain: the two domains bound and aliased.
type Config struct {
	Token       string        `mapstructure:"vercel_token" yaml:"vercel_token"`
	TeamID      string        `mapstructure:"vercel_team_id" yaml:"vercel_team_id"`
	ProjectName string        `mapstructure:"vercel_project_name" yaml:"vercel_project_name"`
	Framework   string        `mapstructure:"vercel_framework" yaml:"vercel_framework"`
	SourceDir   string        `mapstructure:"frontend_dir" yaml:"frontend_dir"`
	ApexDomain  string        `mapstructure:"apex_domain" yaml:"apex_domain"`
	WWWDomain   string        `mapstructure:"www_domain" yaml:"www_domain"`
	CLIPath     string        `mapstructure:"vercel_cli" yaml:"vercel_cli,omitempty"`
	APIURL      string        `mapstructure:"vercel_api_url" yaml:"vercel_api_url"`
	HTTPTimeout time.Duration `mapstructure:"vercel_http_timeout" yaml:"vercel_http_timeout"`
}

// Validate checks the prerequisites that must hold before any network call or subprocess.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// Domains returns the domains to bind and alias, apex first.
func (c *Config) Domains() []string {
	return []string{c.ApexDomain, c.WWWDomain}
}

// MaskedToken returns the token with everything but its first and last four characters hidden.
func (c *Config) MaskedToken() string {
	return Mask(c.Token)
}

// Mask hides a secret for display.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// Render writes the effective configuration as YAML with the token masked.
func (c *Config) Render(w io.Writer) error {
	shown := *c
	shown.Token = c.MaskedToken()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(shown); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	return enc.Close()
}
