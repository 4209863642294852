package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(strings.ToUpper(key), "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Token)
	assert.Equal(t, "jose-cortis-projects", cfg.TeamID)
	assert.Equal(t, "aitrustyou", cfg.ProjectName)
	assert.Equal(t, "vite", cfg.Framework)
	assert.Equal(t, "aitrustyou.com", cfg.ApexDomain)
	assert.Equal(t, "www.aitrustyou.com", cfg.WWWDomain)
	assert.Equal(t, "https://api.vercel.com", cfg.APIURL)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
	assert.NotEmpty(t, cfg.SourceDir)
	assert.Equal(t, []string{"aitrustyou.com", "www.aitrustyou.com"}, cfg.Domains())
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("VERCEL_TOKEN", "tok_1234567890")
	t.Setenv("VERCEL_TEAM_ID", "acme")
	t.Setenv("VERCEL_PROJECT_NAME", "shop")
	t.Setenv("VERCEL_FRAMEWORK", "nextjs")
	t.Setenv("FRONTEND_DIR", "/srv/frontend")
	t.Setenv("APEX_DOMAIN", "acme.dev")
	t.Setenv("WWW_DOMAIN", "www.acme.dev")
	t.Setenv("VERCEL_HTTP_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "tok_1234567890", cfg.Token)
	assert.Equal(t, "acme", cfg.TeamID)
	assert.Equal(t, "shop", cfg.ProjectName)
	assert.Equal(t, "nextjs", cfg.Framework)
	assert.Equal(t, "/srv/frontend", cfg.SourceDir)
	assert.Equal(t, []string{"acme.dev", "www.acme.dev"}, cfg.Domains())
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "deploy.env")
	content := "VERCEL_TOKEN=from_dotenv_token\nAPEX_DOMAIN=example.org\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv_token", cfg.Token)
	assert.Equal(t, "example.org", cfg.ApexDomain)
	assert.Equal(t, "www.aitrustyou.com", cfg.WWWDomain)
}

func TestLoad_YAMLFileWithEnvPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("VERCEL_PROJECT_NAME", "from-env")

	path := filepath.Join(t.TempDir(), "deploy.yaml")
	content := `
vercel_token: yaml_token_value
vercel_project_name: from-file
www_domain: www.example.org
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "yaml_token_value", cfg.Token)
	assert.Equal(t, "from-env", cfg.ProjectName)
	assert.Equal(t, "www.example.org", cfg.WWWDomain)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate_MissingToken(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingToken)

	cfg.Token = "set"
	assert.NoError(t, cfg.Validate())
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "****", Mask("short"))
	assert.Equal(t, "abcd...wxyz", Mask("abcdefghijklmnopqrstuvwxyz"))
}

func TestRender_MasksToken(t *testing.T) {
	cfg := &Config{
		Token:       "secret_token_value",
		TeamID:      "acme",
		ProjectName: "shop",
		HTTPTimeout: time.Minute,
	}

	var buf bytes.Buffer
	require.NoError(t, cfg.Render(&buf))

	out := buf.String()
	assert.NotContains(t, out, "secret_token_value")
	assert.Contains(t, out, "vercel_token: secr...alue")
	assert.Contains(t, out, "vercel_team_id: acme")
	assert.Contains(t, out, "vercel_http_timeout: 1m0s")
	assert.Equal(t, "secret_token_value", cfg.Token)
}
