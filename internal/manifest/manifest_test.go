package manifest

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/djboot-dev/djboot/internal/features"
)

func allCombinations() []features.Flags {
	var combos []features.Flags
	for i := 0; i < 16; i++ {
		combos = append(combos, features.Flags{
			Docs:   i&1 != 0,
			CORS:   i&2 != 0,
			REST:   i&4 != 0,
			Unfold: i&8 != 0,
		})
	}
	return combos
}

func TestDefault(t *testing.T) {
	m := Default()

	for _, feature := range features.Names {
		if len(m.Paths(feature)) == 0 {
			t.Errorf("feature %q has no paths", feature)
		}
	}
	if len(m.Always) != 2 {
		t.Errorf("Always = %v, want 2 fixed paths", m.Always)
	}
}

func TestParse_RejectsSharedOwnership(t *testing.T) {
	_, err := Parse([]byte(`
features:
  docs:
    - src/shared.py
  rest:
    - src/shared.py
`))
	if err == nil {
		t.Fatal("expected error for shared path ownership")
	}
}

func TestParse_RejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("features: [not: a: map"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestUnusedPaths_AllDisabled(t *testing.T) {
	m := Default()

	want := []string{
		".git",
		"install.py",
		"src/apps/accounts",
		"src/apps/docs",
		"src/config/settings/cors.py",
		"src/config/settings/docs.py",
		"src/config/settings/rest.py",
		"src/config/settings/unfold.py",
	}
	got := m.UnusedPaths(features.Flags{})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UnusedPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestUnusedPaths_AllEnabled(t *testing.T) {
	m := Default()

	flags := features.Flags{All: true}.Resolve()
	want := []string{".git", "install.py"}
	got := m.UnusedPaths(flags)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UnusedPaths mismatch (-want +got):\n%s", diff)
	}
}

// Set equality for every combination: a path appears exactly when its owning
// feature is disabled, and the fixed paths always appear.
func TestUnusedPaths_SetEquality(t *testing.T) {
	m := Default()

	for _, flags := range allCombinations() {
		want := append([]string{}, m.Always...)
		for _, feature := range features.Names {
			if !flags.Enabled(feature) {
				want = append(want, m.Paths(feature)...)
			}
		}
		sort.Strings(want)

		got := m.UnusedPaths(flags)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("flags %+v: UnusedPaths mismatch (-want +got):\n%s", flags, diff)
		}
	}
}

// Enabling one feature removes exactly its paths from the unused set, with no
// cross-feature interference.
func TestUnusedPaths_FeatureIndependence(t *testing.T) {
	m := Default()

	for _, feature := range features.Names {
		flags := features.FromNames([]string{feature})
		got := m.UnusedPaths(flags)

		unused := make(map[string]bool, len(got))
		for _, p := range got {
			unused[p] = true
		}

		for _, p := range m.Paths(feature) {
			if unused[p] {
				t.Errorf("enabled feature %q path %q still in unused set", feature, p)
			}
		}
		for _, other := range features.Names {
			if other == feature {
				continue
			}
			for _, p := range m.Paths(other) {
				if !unused[p] {
					t.Errorf("disabled feature %q path %q missing from unused set", other, p)
				}
			}
		}
	}
}
