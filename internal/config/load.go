package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Keys double as lower-cased environment variable names.
const (
	KeyToken       = "vercel_token"
	KeyTeamID      = "vercel_team_id"
	KeyProjectName = "vercel_project_name"
	KeyFramework   = "vercel_framework"
	KeySourceDir   = "frontend_dir"
	KeyApexDomain  = "apex_domain"
	KeyWWWDomain   = "www_domain"
	KeyCLIPath     = "vercel_cli"
	KeyAPIURL      = "vercel_api_url"
	KeyHTTPTimeout = "vercel_http_timeout"
)

var allKeys = []string{
	KeyToken, KeyTeamID, KeyProjectName, KeyFramework, KeySourceDir,
	KeyApexDomain, KeyWWWDomain, KeyCLIPath, KeyAPIURL, KeyHTTPTimeout,
}

// DotEnvFile is read from the working directory when no config file is given.
const DotEnvFile = ".env"

// Load builds a Config from defaults, an optional config file and the environment,
// in increasing order of precedence. configFile may be a YAML file or a .env file;
// when empty, ./.env is used if it exists.
//
// Load never validates; call Validate before touching the network.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults apply when neither the file nor the environment sets a key
	v.SetDefault(KeyTeamID, "jose-cortis-projects")
	v.SetDefault(KeyProjectName, "aitrustyou")
	v.SetDefault(KeyFramework, "vite")
	v.SetDefault(KeySourceDir, defaultSourceDir())
	v.SetDefault(KeyApexDomain, "aitrustyou.com")
	v.SetDefault(KeyWWWDomain, "www.aitrustyou.com")
	v.SetDefault(KeyAPIURL, "https://api.vercel.com")
	v.SetDefault(KeyHTTPTimeout, "60s")

	// Bind every key to its exact upper-case variable (VERCEL_TOKEN, APEX_DOMAIN, ...).
	for _, key := range allKeys {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// Fall back to ./.env when no file was given
	if configFile == "" {
		if _, err := os.Stat(DotEnvFile); err == nil {
			configFile = DotEnvFile
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		// .env files carry no extension viper can infer the format from
		if isDotEnv(configFile) {
			v.SetConfigType("env")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	// Map the merged settings onto the struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func isDotEnv(path string) bool {
	base := filepath.Base(path)
	return base == DotEnvFile || strings.HasSuffix(base, ".env")
}

// defaultSourceDir is the directory holding the running executable.
func defaultSourceDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
