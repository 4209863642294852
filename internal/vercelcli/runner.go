package vercelcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"vercel-deploy/internal/config"
	"vercel-deploy/internal/logger"
)

// TokenFlag is the CLI flag carrying the API token.
const TokenFlag = "--token"

// Result holds the captured output of one CLI invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandError reports a CLI invocation that exited non-zero.
// Args are already masked and safe to print. Stderr is kept for callers but
// left out of Error, since Run has already echoed it.
type CommandError struct {
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed (exit %d): %s", e.ExitCode, strings.Join(e.Args, " "))
}

func (e *CommandError) Unwrap() error { return e.Err }

// Executor runs the CLI with the given arguments in dir.
// Runner is the production implementation; tests substitute fakes.
type Executor interface {
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// Runner executes the resolved Vercel CLI synchronously, without a shell.
type Runner struct {
	Bin   string
	Token string
}

// NewRunner returns a Runner for the CLI at bin authenticating with token.
func NewRunner(bin, token string) *Runner {
	return &Runner{Bin: bin, Token: token}
}

// Run executes the CLI with args in dir (the current directory when empty).
// The token flag is appended unless args already carry one. Stdout is echoed
// through the logger; a non-zero exit yields a *CommandError with stderr attached.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	args = r.withToken(args)
	// Echo the command with the token hidden
	shown := MaskArgs(args)

	logger.Plain("\n$ %s %s\n", r.Bin, strings.Join(shown, " "))

	cmd := exec.CommandContext(ctx, r.Bin, args...)
	cmd.Dir = dir
	// Inherit the environment and expose the token to the child
	cmd.Env = os.Environ()
	if r.Token != "" {
		cmd.Env = append(cmd.Env, "VERCEL_TOKEN="+r.Token)
	}

	// Capture both streams; the URL may be printed on either
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if res.Stdout != "" {
		logger.Plain("%s\n", res.Stdout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
		if res.Stderr != "" {
			logger.Error("%s\n", res.Stderr)
		}
		return res, &CommandError{Args: shown, Stderr: res.Stderr, ExitCode: res.ExitCode, Err: err}
	}
	return res, nil
}

// withToken appends --token unless a token flag is already present.
func (r *Runner) withToken(args []string) []string {
	if r.Token == "" || HasTokenFlag(args) {
		return args
	}
	out := make([]string, 0, len(args)+2)
	out = append(out, args...)
	return append(out, TokenFlag, r.Token)
}

// HasTokenFlag reports whether args contain --token or --token=value.
func HasTokenFlag(args []string) bool {
	for _, a := range args {
		if a == TokenFlag || strings.HasPrefix(a, TokenFlag+"=") {
			return true
		}
	}
	return false
}

// MaskArgs returns a copy of args with token values hidden.
func MaskArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, a := range out {
		switch {
		case a == TokenFlag && i+1 < len(out):
			out[i+1] = config.Mask(out[i+1])
		case strings.HasPrefix(a, TokenFlag+"="):
			out[i] = TokenFlag + "=" + config.Mask(strings.TrimPrefix(a, TokenFlag+"="))
		}
	}
	return out
}
