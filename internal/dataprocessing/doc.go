// Package dataprocessing converts raw stock-returns datasets into the
// canonical long-format table the panel statistics pipeline consumes.
//
// Two input shapes are supported: Excel workbooks as distributed by the
// data vendor (ParseWorkbook, with header-row detection and per-cell parse
// warnings), and the canonical CSV produced by the convertcsv tool
// (LoadReturnsCSV, strict: missing columns or unparseable dates abort the
// run).
package dataprocessing
