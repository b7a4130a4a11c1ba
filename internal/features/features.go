// Package features defines the boilerplate feature toggles.
//
// Four independent features can be included in an install: API documentation
// (docs), CORS headers (cors), the REST framework (rest), and the Unfold
// admin theme together with the accounts app (unfold). The convenience flag
// All forces every feature on. All 16 combinations of the four features are
// valid.
package features

// Flags is the set of feature toggles for a single install. It is computed
// once from command-line input and never mutated afterwards.
type Flags struct {
	// Docs includes Swagger API documentation and the docs app.
	Docs bool

	// CORS includes CORS header settings.
	CORS bool

	// REST includes the REST framework settings.
	REST bool

	// Unfold includes the Unfold admin theme and the accounts app.
	Unfold bool

	// All forces every feature on.
	All bool
}

// Names of the four individual features, in manifest order.
var Names = []string{"docs", "cors", "rest", "unfold"}

// Resolve applies the All override: if All is set, every individual flag is
// forced true; otherwise the flags pass through unchanged. Pure and total.
func (f Flags) Resolve() Flags {
	if !f.All {
		return f
	}
	return Flags{Docs: true, CORS: true, REST: true, Unfold: true, All: true}
}

// Enabled reports whether the named feature is on. Unknown names are off.
func (f Flags) Enabled(name string) bool {
	switch name {
	case "docs":
		return f.Docs
	case "cors":
		return f.CORS
	case "rest":
		return f.REST
	case "unfold":
		return f.Unfold
	}
	return false
}

// Any reports whether at least one individual feature flag is set.
func (f Flags) Any() bool {
	return f.Docs || f.CORS || f.REST || f.Unfold
}

// EnabledNames returns the names of enabled features, in manifest order.
func (f Flags) EnabledNames() []string {
	var names []string
	for _, name := range Names {
		if f.Enabled(name) {
			names = append(names, name)
		}
	}
	return names
}

// FromNames builds Flags from a list of feature names. Unknown names are
// ignored.
func FromNames(names []string) Flags {
	var f Flags
	for _, name := range names {
		switch name {
		case "docs":
			f.Docs = true
		case "cors":
			f.CORS = true
		case "rest":
			f.REST = true
		case "unfold":
			f.Unfold = true
		}
	}
	return f
}
