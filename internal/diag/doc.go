// Package diag defines the diagnostic model shared by the lexer and driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced while loading and tokenizing sources.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO or CLI integration.
// Rendering lives in internal/diagfmt, orchestration in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX1001, IO4001, ...).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// The lexer never fails: an unknown character becomes an Invalid token and,
// when a Reporter is configured, a LEX1001 diagnostic. Producers either call
// Reporter.Report directly or build through ReportError/ReportWarning and
// Emit. BagReporter aggregates into a Bag, which supports limits, sorting,
// deduplication and filtering.
package diag
