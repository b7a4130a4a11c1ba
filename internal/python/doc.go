// Package python drives the Python toolchain steps of an install.
//
// Every step is an opaque external command run to completion in the
// destination directory: checking for (or bootstrapping) Poetry, creating
// the virtual environment, installing dependencies, formatting with black,
// and finally the long-running Django development server. The server runs
// in its own process group so the whole tree can be stopped together.
//
// No retry or timeout semantics exist: a failed step is fatal and carries a
// coded error.
package python
