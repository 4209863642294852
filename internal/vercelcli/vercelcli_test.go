package vercelcli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Locator
// =============================================================================

func fakeFS(paths ...string) func(string) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func windowsLocator(lookup string, lookupErr error, existing ...string) *Locator {
	return &Locator{
		Name:     "vercel",
		Suffix:   ".cmd",
		Fallback: "/home/dev/AppData/Roaming/npm/vercel.cmd",
		LookPath: func(string) (string, error) { return lookup, lookupErr },
		Exists:   fakeFS(existing...),
	}
}

func TestResolve_PrefersWrapperFromLookupOverFallback(t *testing.T) {
	l := windowsLocator("/opt/nodejs/vercel.cmd", nil, "/opt/nodejs/vercel.cmd", "/home/dev/AppData/Roaming/npm/vercel.cmd")

	path, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/opt/nodejs/vercel.cmd", path)
}

func TestResolve_AppendsSuffixToBareLookupResult(t *testing.T) {
	l := windowsLocator(`"/opt/nodejs/vercel"`, nil, "/opt/nodejs/vercel.cmd", "/home/dev/AppData/Roaming/npm/vercel.cmd")

	path, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/opt/nodejs/vercel.cmd", path)
}

func TestResolve_FallsBackWhenLookupFails(t *testing.T) {
	l := windowsLocator("", errors.New("not in PATH"), "/home/dev/AppData/Roaming/npm/vercel.cmd")

	path, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/home/dev/AppData/Roaming/npm/vercel.cmd", path)
}

func TestResolve_FallsBackWhenWrapperMissing(t *testing.T) {
	l := windowsLocator("/opt/nodejs/vercel", nil, "/home/dev/AppData/Roaming/npm/vercel.cmd")

	path, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/home/dev/AppData/Roaming/npm/vercel.cmd", path)
}

func TestResolve_NotFound(t *testing.T) {
	l := windowsLocator("", errors.New("not in PATH"))

	_, err := l.Resolve()
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Contains(t, err.Error(), "npm install -g vercel")
}

func TestResolve_UnixUsesLookupAsIs(t *testing.T) {
	l := &Locator{
		Name:     "vercel",
		Fallback: "/home/dev/.npm-global/bin/vercel",
		LookPath: func(string) (string, error) { return "/usr/local/bin/vercel", nil },
		Exists:   fakeFS("/home/dev/.npm-global/bin/vercel"),
	}

	path, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/vercel", path)
}

func TestResolve_ExplicitPath(t *testing.T) {
	l := windowsLocator("/opt/nodejs/vercel.cmd", nil, "/tools/vercel.cmd")
	l.Explicit = "/tools/vercel.cmd"

	path, err := l.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/tools/vercel.cmd", path)

	l.Explicit = "/tools/missing.cmd"
	_, err = l.Resolve()
	assert.ErrorIs(t, err, ErrToolNotFound)
}

// =============================================================================
// Runner
// =============================================================================

const fakeCLI = `#!/bin/sh
echo "pwd=$(pwd)"
echo "args=$*"
echo "env=$VERCEL_TOKEN"
echo "some warning" 1>&2
exit ${FAKE_VERCEL_EXIT:-0}
`

func writeFakeCLI(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "vercel")
	require.NoError(t, os.WriteFile(path, []byte(fakeCLI), 0755))
	return path
}

func TestRunner_AppendsTokenAndCapturesOutput(t *testing.T) {
	bin := writeFakeCLI(t)
	dir := t.TempDir()
	t.Setenv("FAKE_VERCEL_EXIT", "0")

	r := NewRunner(bin, "tok_abcdefgh1234")
	res, err := r.Run(context.Background(), dir, "--prod", "--scope", "acme", "--yes")
	require.NoError(t, err)

	resolvedDir, _ := filepath.EvalSymlinks(dir)
	assert.Contains(t, res.Stdout, "args=--prod --scope acme --yes --token tok_abcdefgh1234")
	assert.Contains(t, res.Stdout, "env=tok_abcdefgh1234")
	assert.Contains(t, res.Stdout, "pwd="+resolvedDir)
	assert.Contains(t, res.Stderr, "some warning")
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunner_KeepsExistingToken(t *testing.T) {
	bin := writeFakeCLI(t)
	t.Setenv("FAKE_VERCEL_EXIT", "0")

	r := NewRunner(bin, "tok_configured00")
	res, err := r.Run(context.Background(), "", "alias", "ls", "--token=tok_explicit0000")
	require.NoError(t, err)

	assert.Contains(t, res.Stdout, "args=alias ls --token=tok_explicit0000\n")
	assert.NotContains(t, res.Stdout, "args=alias ls --token=tok_explicit0000 --token")
}

func TestRunner_NonZeroExit(t *testing.T) {
	bin := writeFakeCLI(t)
	t.Setenv("FAKE_VERCEL_EXIT", "3")

	r := NewRunner(bin, "tok_abcdefgh1234")
	res, err := r.Run(context.Background(), "", "alias", "set", "a", "b")
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, cmdErr.Stderr, "some warning")
	assert.Equal(t, []string{"alias", "set", "a", "b", "--token", "tok_...1234"}, cmdErr.Args)
	assert.NotContains(t, err.Error(), "tok_abcdefgh1234")
	// stderr was already echoed by Run
	assert.NotContains(t, err.Error(), "some warning")
	assert.Equal(t, "command failed (exit 3): alias set a b --token tok_...1234", err.Error())
}

func TestHasTokenFlag(t *testing.T) {
	assert.True(t, HasTokenFlag([]string{"--prod", "--token", "x"}))
	assert.True(t, HasTokenFlag([]string{"--token=x"}))
	assert.False(t, HasTokenFlag([]string{"--prod", "--tokens"}))
	assert.False(t, HasTokenFlag(nil))
}

func TestMaskArgs(t *testing.T) {
	in := []string{"--prod", "--token", "tok_abcdefgh1234", "--token=tok_zyxwvuts9876"}
	out := MaskArgs(in)

	assert.Equal(t, []string{"--prod", "--token", "tok_...1234", "--token=tok_...9876"}, out)
	assert.Equal(t, "tok_abcdefgh1234", in[2])
}
