// Package diag defines the diagnostic model shared by the script reader and
// the semantic checkers.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a
// message, a primary source.Span and optional Notes. Producers emit through
// the Reporter interface so they stay decoupled from storage; BagReporter
// aggregates into a Bag, which supports sorting, deduplication and merging
// for deterministic CLI output.
//
// The checkers in internal/sema treat diagnostics as advisory findings, not
// failures: a checker reports through its Reporter and still returns its
// verdict by value.
package diag
