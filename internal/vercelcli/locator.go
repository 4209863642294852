package vercelcli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"vercel-deploy/internal/logger"
)

// ToolName is the logical name of the Vercel CLI.
const ToolName = "vercel"

// ErrToolNotFound is returned when neither the lookup nor the fallback path yields the CLI.
var ErrToolNotFound = errors.New("vercel CLI not found; install it with: npm install -g vercel")

// Locator finds the Vercel CLI on disk.
//
// On Windows npm installs an extensionless shim next to vercel.cmd; executing the
// shim through CreateProcess fails, so the .cmd wrapper is preferred whenever it exists.
type Locator struct {
	// Explicit is a user-configured path that short-circuits the lookup.
	Explicit string
	// Name is the command to look up, normally ToolName.
	Name string
	// Suffix is the platform wrapper suffix (".cmd" on Windows, empty elsewhere).
	Suffix string
	// Fallback is the well-known install location checked last.
	Fallback string

	LookPath func(file string) (string, error)
	Exists   func(path string) bool
}

// NewLocator returns a Locator configured for the current platform.
func NewLocator(explicit string) *Locator {
	l := &Locator{
		Explicit: explicit,
		Name:     ToolName,
		LookPath: exec.LookPath,
		Exists:   fileExists,
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		l.Suffix = ".cmd"
		l.Fallback = filepath.Join(home, "AppData", "Roaming", "npm", ToolName+".cmd")
	} else {
		l.Fallback = filepath.Join(home, ".npm-global", "bin", ToolName)
	}
	return l
}

// Resolve returns an absolute, invocable path to the CLI.
func (l *Locator) Resolve() (string, error) {
	// An explicitly configured path wins and is never second-guessed
	if l.Explicit != "" {
		if l.Exists(l.Explicit) {
			return absolute(l.Explicit), nil
		}
		return "", fmt.Errorf("%w: configured path %s does not exist", ErrToolNotFound, l.Explicit)
	}

	// Look the tool up on PATH
	if found, err := l.LookPath(l.Name); err == nil && found != "" {
		found = strings.Trim(strings.TrimSpace(found), `"`)
		logger.Debug("[DEBUG] lookup found %s at %s\n", l.Name, found)
		lower := strings.ToLower(found)

		if l.Suffix == "" || strings.HasSuffix(lower, strings.ToLower(l.Name+l.Suffix)) {
			return absolute(found), nil
		}
		// PATH returned the bare shim; prefer the wrapper next to it
		if strings.HasSuffix(lower, strings.ToLower(l.Name)) {
			if candidate := found + l.Suffix; l.Exists(candidate) {
				return absolute(candidate), nil
			}
		}
	} else {
		logger.Debug("[DEBUG] lookup for %s failed: %v\n", l.Name, err)
	}

	// Last resort: the npm global install location
	if l.Fallback != "" && l.Exists(l.Fallback) {
		logger.Debug("[DEBUG] using fallback install path %s\n", l.Fallback)
		return absolute(l.Fallback), nil
	}

	return "", ErrToolNotFound
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
