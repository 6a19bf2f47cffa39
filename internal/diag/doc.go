// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: severity, stable code, message, primary
// span and optional notes. Phases emit diagnostics through a Reporter and
// never return Go errors for problems in the model being analyzed; only
// environment-level failures (missing files, bad configuration) surface as
// errors. Bags aggregate diagnostics per file or per session and support
// deterministic sorting, merging and deduplication.
//
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
