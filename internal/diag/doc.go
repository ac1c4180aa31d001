// Package diag defines the diagnostic model shared by the lexer, parser and
// elaboration phases.
//
// Diagnostics are data. A phase never fails because of malformed input: it
// reports a Diagnostic through a Reporter and keeps going. Storage (Bag),
// filtering (DedupReporter, LimitReporter) and counting (Counter) are
// Reporter implementations that can be stacked. Rendering lives in
// internal/diagfmt.
//
// Codes are grouped by phase: LEX1xxx, SYN2xxx, SEM3xxx, EVL4xxx, IO5xxx.
// The numeric value is stable and part of the JSON output.
package diag
