package features

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// allCombinations returns all 16 combinations of the four feature flags.
func allCombinations() []Flags {
	var combos []Flags
	for i := 0; i < 16; i++ {
		combos = append(combos, Flags{
			Docs:   i&1 != 0,
			CORS:   i&2 != 0,
			REST:   i&4 != 0,
			Unfold: i&8 != 0,
		})
	}
	return combos
}

func TestResolve_AllOverride(t *testing.T) {
	want := Flags{Docs: true, CORS: true, REST: true, Unfold: true, All: true}
	for _, combo := range allCombinations() {
		combo.All = true
		if got := combo.Resolve(); got != want {
			t.Errorf("Resolve(%+v) = %+v, want all-true", combo, got)
		}
	}
}

func TestResolve_Identity(t *testing.T) {
	for _, combo := range allCombinations() {
		if got := combo.Resolve(); got != combo {
			t.Errorf("Resolve(%+v) = %+v, want identity", combo, got)
		}
	}
}

func TestEnabled(t *testing.T) {
	f := Flags{Docs: true, REST: true}

	tests := []struct {
		name string
		want bool
	}{
		{"docs", true},
		{"cors", false},
		{"rest", true},
		{"unfold", false},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		if got := f.Enabled(tt.name); got != tt.want {
			t.Errorf("Enabled(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAny(t *testing.T) {
	if (Flags{}).Any() {
		t.Error("zero flags should report Any() == false")
	}
	if !(Flags{CORS: true}).Any() {
		t.Error("one flag set should report Any() == true")
	}
}

func TestEnabledNames_Order(t *testing.T) {
	f := Flags{Docs: true, CORS: true, REST: true, Unfold: true}
	want := []string{"docs", "cors", "rest", "unfold"}
	if diff := cmp.Diff(want, f.EnabledNames()); diff != "" {
		t.Errorf("EnabledNames mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNames_RoundTrip(t *testing.T) {
	for _, combo := range allCombinations() {
		if got := FromNames(combo.EnabledNames()); got != combo {
			t.Errorf("FromNames(EnabledNames(%+v)) = %+v", combo, got)
		}
	}
}

func TestFromNames_IgnoresUnknown(t *testing.T) {
	got := FromNames([]string{"docs", "bogus"})
	if got != (Flags{Docs: true}) {
		t.Errorf("FromNames = %+v, want only docs", got)
	}
}
