// Package panel assembles long-format stock return observations into an
// analysis-ready panel and partitions it for cross-sectional or time-series
// statistics.
//
// Assembly sorts raw rows by (symbol, date), forward-shifts each trailing
// return horizon within every symbol's history to produce the matching
// forward-looking target, and drops rows whose shifted values fall off the
// end of the history. The resulting Panel is fully populated: every
// observation carries all past and future horizons.
//
// Partitioning splits the panel along one of two axes: by date for
// cross-sectional analysis, or by symbol for time-series analysis. The
// partitions are disjoint and cover the panel exactly.
package panel
