package deployer

import (
	"errors"
	"regexp"

	"vercel-deploy/internal/vercelcli"
)

// ErrURLNotFound is returned when the CLI output carries no deployment URL.
var ErrURLNotFound = errors.New("deployment URL not found in vercel CLI output")

// DeploymentURLPattern matches generated deployment hosts.
var DeploymentURLPattern = regexp.MustCompile(`https?://[a-zA-Z0-9\-._]+\.vercel\.app`)

// URLExtractor learns the deployment URL from a finished deploy invocation.
// RegexExtractor scrapes human-readable output; a structured-output mode of the
// CLI can be plugged in here without touching Deployer's callers.
type URLExtractor interface {
	Extract(res vercelcli.Result) (string, error)
}

// RegexExtractor scans stdout, then stderr when stdout has no match,
// and returns the last URL found. The CLI prints the inspect URL before the
// final production URL, so the last occurrence is the canonical one.
type RegexExtractor struct {
	Pattern *regexp.Regexp
}

// Extract implements URLExtractor.
func (e RegexExtractor) Extract(res vercelcli.Result) (string, error) {
	pattern := e.Pattern
	if pattern == nil {
		pattern = DeploymentURLPattern
	}

	for _, stream := range []string{res.Stdout, res.Stderr} {
		if urls := pattern.FindAllString(stream, -1); len(urls) > 0 {
			return urls[len(urls)-1], nil
		}
	}
	return "", ErrURLNotFound
}
