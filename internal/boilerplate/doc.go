// Package boilerplate materializes a feature-consistent copy of the Django
// boilerplate tree.
//
// The two rewritten configuration modules (the URL include list and the base
// settings module) are represented as ordered lists of named line fragments.
// A fragment either belongs to a feature or is unconditional; rendering
// filters the list on the resolved flags and joins what remains. This keeps
// the output syntactically valid for every flag combination, including the
// empty include list when no routed feature is enabled, and makes rendering
// idempotent by construction.
//
// Apply performs the materialization in a fixed order: precondition check,
// full-tree copy, template writes, then removal of feature-gated paths. A
// non-empty destination aborts before anything is written. A path scheduled
// for removal that does not exist is skipped; any other removal failure is
// fatal and aborts the remaining cleanup with no rollback.
package boilerplate
