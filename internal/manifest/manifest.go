// Package manifest maps boilerplate features to the filesystem paths that
// exist only to support them.
//
// The default manifest is embedded as YAML. Each path is owned by exactly
// one feature, so the paths of any disabled feature can be removed without
// touching an enabled one. Two fixed paths (version-control metadata and the
// legacy installer script) are removed from every install.
package manifest

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/djboot-dev/djboot/internal/errors"
	"github.com/djboot-dev/djboot/internal/features"
)

//go:embed manifest.yaml
var defaultManifest []byte

// Manifest maps feature names to the relative paths they own.
type Manifest struct {
	// Features maps a feature name to the paths that exist only for it.
	Features map[string][]string `yaml:"features"`

	// Always lists paths removed from every install.
	Always []string `yaml:"always"`
}

// Default returns the embedded manifest. It panics if the embedded document
// is invalid, which only happens on a broken build.
func Default() *Manifest {
	m, err := Parse(defaultManifest)
	if err != nil {
		panic(err)
	}
	return m
}

// Parse decodes and validates a YAML manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.New("E004").Wrap(err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate enforces exclusive path ownership across features.
func (m *Manifest) validate() error {
	owner := make(map[string]string)
	for feature, paths := range m.Features {
		for _, p := range paths {
			if prev, ok := owner[p]; ok {
				return errors.New("E004").
					WithPath(p).
					WithDetail("Path is claimed by both '" + prev + "' and '" + feature + "'")
			}
			owner[p] = feature
		}
	}
	return nil
}

// Paths returns the paths owned by the named feature. Unknown names return
// nil.
func (m *Manifest) Paths(feature string) []string {
	return m.Features[feature]
}

// UnusedPaths returns the sorted set of relative paths to remove for the
// given resolved flags: the paths of every disabled feature plus the
// always-removed paths. Iteration order does not affect the result.
func (m *Manifest) UnusedPaths(flags features.Flags) []string {
	set := make(map[string]struct{})
	for _, p := range m.Always {
		set[p] = struct{}{}
	}
	for feature, paths := range m.Features {
		if flags.Enabled(feature) {
			continue
		}
		for _, p := range paths {
			set[p] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
