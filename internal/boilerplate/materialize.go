package boilerplate

import (
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"

	"github.com/djboot-dev/djboot/internal/errors"
	"github.com/djboot-dev/djboot/internal/features"
	"github.com/djboot-dev/djboot/internal/manifest"
)

// Materializer turns a boilerplate source tree plus a resolved feature-flag
// set into an edited destination tree.
type Materializer struct {
	manifest  *manifest.Manifest
	templates []*Template
}

// NewMaterializer creates a materializer with the given manifest and the
// standard templates.
func NewMaterializer(m *manifest.Manifest) *Materializer {
	return &Materializer{
		manifest:  m,
		templates: Templates(),
	}
}

// Manifest returns the manifest the materializer removes paths from.
func (m *Materializer) Manifest() *manifest.Manifest {
	return m.manifest
}

// CheckDestination verifies the precondition that dest exists and is empty.
// It creates missing parent directories. Nothing else is written.
func (m *Materializer) CheckDestination(dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.New("E002").WithPath(dest).Wrap(err)
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		return errors.New("E002").WithPath(dest).Wrap(err)
	}
	if len(entries) > 0 {
		return errors.New("E001").
			WithPath(dest).
			WithSuggestion("Choose an empty directory or remove its contents")
	}
	return nil
}

// Apply materializes the boilerplate at dest: copy the full source tree,
// write the rendered templates, then remove the paths of disabled features.
// The destination must be empty; a non-empty destination aborts before any
// write. Cleanup failures abort with the destination partially materialized.
func (m *Materializer) Apply(src, dest string, flags features.Flags) error {
	if err := m.CheckDestination(dest); err != nil {
		return err
	}

	if err := cp.Copy(src, dest); err != nil {
		return errors.New("E040").WithPath(src).Wrap(err)
	}

	for _, tmpl := range m.templates {
		target := filepath.Join(dest, filepath.FromSlash(tmpl.DestPath))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.New("E041").WithPath(target).Wrap(err)
		}
		if err := os.WriteFile(target, []byte(tmpl.Render(flags)), 0644); err != nil {
			return errors.New("E041").WithPath(target).Wrap(err)
		}
	}

	return m.removeUnused(dest, flags)
}

// removeUnused deletes every path owned by a disabled feature plus the
// always-removed paths. Missing paths are already satisfied; any other
// failure is fatal and stops the remaining cleanup.
func (m *Materializer) removeUnused(dest string, flags features.Flags) error {
	for _, rel := range m.manifest.UnusedPaths(flags) {
		target := filepath.Join(dest, filepath.FromSlash(rel))
		if _, err := os.Lstat(target); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return errors.New("E060").WithPath(target).Wrap(err)
		}
	}
	return nil
}
