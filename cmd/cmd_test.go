package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vercel-deploy/internal/config"
)

var envKeys = []string{
	"VERCEL_TOKEN", "VERCEL_TEAM_ID", "VERCEL_PROJECT_NAME", "VERCEL_FRAMEWORK", "FRONTEND_DIR",
	"APEX_DOMAIN", "WWW_DOMAIN", "VERCEL_CLI", "VERCEL_API_URL", "VERCEL_HTTP_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		configPath = ""
		debug = false
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommand_MasksToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("VERCEL_TOKEN", "tok_supersecret_9876")
	t.Setenv("APEX_DOMAIN", "acme.dev")

	out, err := execute(t, "config")
	require.NoError(t, err)

	assert.Contains(t, out, "vercel_token: tok_...9876")
	assert.Contains(t, out, "apex_domain: acme.dev")
	assert.NotContains(t, out, "tok_supersecret_9876")
}

func TestConfigCommand_ReadsConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vercel_project_name: from-file\n"), 0644))

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "vercel_project_name: from-file")
}

func TestDeployCommand_MissingTokenFailsFast(t *testing.T) {
	clearEnv(t)
	// An unroutable API and CLI path make any attempted call fail differently.
	t.Setenv("VERCEL_API_URL", "http://127.0.0.1:1")
	t.Setenv("VERCEL_CLI", filepath.Join(t.TempDir(), "missing-vercel"))

	for _, args := range [][]string{{"deploy"}, {"deploy", "project"}, {"deploy", "domains"}, {"deploy", "status"}, {"deploy", "alias", "https://x.vercel.app"}} {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			_, err := execute(t, args...)
			assert.ErrorIs(t, err, config.ErrMissingToken)
		})
	}
}

func TestDeployAlias_RequiresURL(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "deploy", "alias")
	assert.Error(t, err)
}

// captureLog redirects the colored logger output for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	out, noColor := color.Output, color.NoColor
	color.Output, color.NoColor = &buf, true
	t.Cleanup(func() { color.Output, color.NoColor = out, noColor })
	return &buf
}

func TestDeployAlias_LogsBothDomains(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake CLI is a shell script")
	}
	clearEnv(t)

	cli := filepath.Join(t.TempDir(), "vercel")
	require.NoError(t, os.WriteFile(cli, []byte("#!/bin/sh\necho \"Success! $4 now points to $3\"\n"), 0755))
	t.Setenv("VERCEL_CLI", cli)
	t.Setenv("VERCEL_TOKEN", "tok_abcdefgh1234")
	t.Setenv("APEX_DOMAIN", "acme.dev")
	t.Setenv("WWW_DOMAIN", "www.acme.dev")

	log := captureLog(t)
	_, err := execute(t, "deploy", "alias", "https://site-1.vercel.app")
	require.NoError(t, err)

	assert.Contains(t, log.String(), "Success! acme.dev now points to https://site-1.vercel.app")
	assert.Contains(t, log.String(), "🎯 https://site-1.vercel.app now serves acme.dev and www.acme.dev")
	assert.NotContains(t, log.String(), "tok_abcdefgh1234")
}
