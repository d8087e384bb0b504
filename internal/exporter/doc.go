// Package exporter writes the pipeline's CSV outputs: the canonical
// long-format returns table produced by conversion, and the per-partition
// statistics reports with their four key-aligned series. Files carry a
// UTF-8 BOM so spreadsheet tools open them correctly; non-finite values are
// rendered as empty cells.
package exporter
