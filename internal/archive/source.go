// Package archive turns the configured frontend source into a directory the
// Vercel CLI can deploy from. A plain directory is used as is; a prebuilt
// archive is unpacked into a temporary directory that Close removes.
package archive

import (
	"errors"
	"fmt"
	"os"

	"vercel-deploy/internal/logger"
)

// ErrSourceNotFound is returned when the configured source does not exist.
var ErrSourceNotFound = errors.New("frontend source does not exist")

// Source is a deployable directory, possibly backed by a temporary extraction.
type Source struct {
	Dir     string
	tempDir string
}

// Prepare resolves path to a deployable directory.
// Callers must Close the returned Source, on success and on failure paths alike.
func Prepare(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	// Directories are deployed in place
	if info.IsDir() {
		return &Source{Dir: path}, nil
	}
	if !IsArchive(path) {
		return nil, fmt.Errorf("%s is neither a directory nor a supported archive", path)
	}

	tmp, err := os.MkdirTemp("", "vercel-deploy-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	logger.Info("📦 Extracting %s ...\n", path)
	dir, err := Extract(path, tmp)
	if err != nil {
		// Don't leave a half-extracted tree behind
		_ = os.RemoveAll(tmp)
		return nil, err
	}
	logger.Debug("[DEBUG] extracted %s to %s\n", path, dir)
	return &Source{Dir: dir, tempDir: tmp}, nil
}

// Close removes the temporary extraction, if any. It is safe to call more than once.
func (s *Source) Close() error {
	if s == nil || s.tempDir == "" {
		return nil
	}
	tmp := s.tempDir
	s.tempDir = ""
	if err := os.RemoveAll(tmp); err != nil {
		return fmt.Errorf("failed to remove %s: %w", tmp, err)
	}
	return nil
}

// Temporary reports whether the source lives in a temporary extraction.
func (s *Source) Temporary() bool {
	return s.tempDir != ""
}
