// Package source acquires the boilerplate tree to install from.
//
// A Source produces a local directory holding the full boilerplate. The
// default is the directory the installer runs from, matching the original
// workflow where the installer lives inside the boilerplate repository. A
// remote source downloads a .tar.gz archive of the boilerplate from an S3
// bucket and extracts it to a scratch directory.
package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/djboot-dev/djboot/internal/errors"
)

// Source yields a directory containing the boilerplate tree. The returned
// path stays valid until the process exits.
type Source interface {
	// Fetch resolves the boilerplate tree, using workDir for any scratch
	// space, and returns the directory holding it.
	Fetch(ctx context.Context, workDir string) (string, error)
}

// LocalSource serves a boilerplate tree already on disk.
type LocalSource struct {
	// Dir is the boilerplate root.
	Dir string
}

// Fetch validates the directory and returns it unchanged.
func (l *LocalSource) Fetch(_ context.Context, _ string) (string, error) {
	info, err := os.Stat(l.Dir)
	if err != nil || !info.IsDir() {
		return "", errors.New("E020").
			WithPath(l.Dir).
			WithSuggestion("Point --source at the boilerplate checkout")
	}
	if !looksLikeBoilerplate(l.Dir) {
		return "", errors.New("E020").
			WithPath(l.Dir).
			WithDetail("No pyproject.toml was found in the source directory")
	}
	return l.Dir, nil
}

// looksLikeBoilerplate checks for the project marker files.
func looksLikeBoilerplate(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "pyproject.toml"))
	return err == nil
}
