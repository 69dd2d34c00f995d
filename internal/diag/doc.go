// Package diag models the diagnostics the external C compiler reports for
// each pass.
//
// # Data model
//
// Diagnostic mirrors one entry of gcc's -fdiagnostics-format=json output:
//
//   - Kind – note, warning or error (fatal errors fold into error).
//   - Message – the compiler's text, verbatim; classification keys off it.
//   - Option – the warning flag that enabled the diagnostic, if any.
//   - Locations – zero or more caret/start/finish point triples.
//   - Children – nested notes, kept for display only.
//
// Locations are 1-based line and byte-column pairs. Resolving them into
// editable extents is the job of internal/source.
//
// # Scope
//
// Package diag does not classify or render. DecodeJSON and EncodeJSON move
// diagnostics across the compiler boundary; FormatShort gives tests and trace
// output a stable one-line form. The caret view lives in internal/diagfmt.
package diag
