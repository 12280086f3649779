// Package diag defines the diagnostic model shared by the lexer and parser.
//
// # Purpose
//
//   - Represent every parse-time problem as a value (a Diagnosable kind) that
//     produces a structured Log on demand.
//   - Offer light-weight utilities (Reporter, Bag, Collector) that let
//     producers emit diagnostics without coupling to storage or formatting.
//   - Decide observability of logs through the Verbosity filter.
//
// # Scope
//
// Package diag does not perform any formatting beyond the short golden form,
// IO or CLI integration. Rendering lives in internal/diagfmt; orchestration
// lives in internal/driver.
//
// # Data model
//
// Log is the central record. It contains:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - ID – optional stable id of the form Eddd; ids with an entry in the
//     explain registry (explain.go) mark the log Explainable.
//   - Message – short, lowercase, no trailing punctuation.
//   - Excerpts – annotated spans; the first one is the primary location.
//   - Help and Notes – free text shown after the excerpts.
//
// Logs are immutable values: builder methods (WithExcerpt, WithHelp, ...)
// return modified copies and never share backing arrays.
//
// # Kinds
//
// The set of kinds is closed (Diagnosable is sealed). Adding a kind means
// adding a Kind constant, a payload type in kinds.go and, when it carries an
// id, an Explanation entry. Tests enumerate Kinds() to keep the three in sync.
//
// # Verbosity
//
// PermitsPrinting is a pure predicate; the verbosity is always passed in by
// the caller and never read from process state.
package diag
