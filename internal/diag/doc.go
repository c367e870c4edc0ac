// Package diag defines the diagnostic model shared by the lexer, parser,
// metadata resolution and the normalization driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1xxx, SYN2xxx, META3xxx, NORM4xxx, IO5xxx), a short Message,
// the primary source.Span and optional Notes pointing at related locations.
//
// Phases emit through a Reporter, usually via ReportError(...).WithNote(...).Emit(),
// and never format anything themselves. BagReporter collects into a Bag, which
// caps, sorts and merges diagnostics for the driver. Rendering lives in
// internal/diagfmt.
package diag
