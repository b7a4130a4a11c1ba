// Package errors provides structured, coded errors for the installer.
//
// Every failure mode the installer can hit has a registered code (e.g.
// "E001") with a category, a short message, a longer detail, and a
// documentation URL. Call sites attach context with the builder methods:
//
//	return errors.New("E001").
//	    WithPath(dest).
//	    WithSuggestion("Choose an empty directory or remove its contents")
//
// Codes are grouped by category:
//
//   - E001-E019: configuration and preconditions
//   - E020-E039: boilerplate source acquisition
//   - E040-E059: installation (copy, templates, env file)
//   - E060-E069: feature cleanup
//   - E070-E089: external processes (poetry, venv, black, runserver)
//   - E090-E099: development proxy
//
// There is no recovery path: every error terminates the run and is printed
// to the terminal via Format or PrintError.
package errors
