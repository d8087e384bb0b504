package panel

import (
	"fmt"
	"time"
)

// NumHorizons is the number of return horizons carried on every observation.
const NumHorizons = 4

// Horizons lists the trailing/forward return horizons in periods,
// shortest first. The order is significant: Trailing[i], Past[i] and
// Future[i] all refer to Horizons[i].
var Horizons = [NumHorizons]int{1, 3, 6, 12}

// DateFormat is the canonical key format for cross-sectional partitions.
// ISO dates sort lexicographically in chronological order.
const DateFormat = "2006-01-02"

// Row is a single raw observation before forward targets are attached:
// one (symbol, date) pair with its trailing return horizons.
type Row struct {
	Symbol   string                `json:"symbol"`
	Date     time.Time             `json:"date"`
	Trailing [NumHorizons]float64  `json:"trailing"`
}

// Observation is a fully populated panel row: trailing returns (Past) plus
// the same horizons pulled forward from later observations of the same
// symbol (Future).
type Observation struct {
	Symbol string               `json:"symbol"`
	Date   time.Time            `json:"date"`
	Past   [NumHorizons]float64 `json:"past"`
	Future [NumHorizons]float64 `json:"future"`
}

// Panel is an ordered collection of fully populated observations, sorted by
// (symbol, date) with no duplicate (symbol, date) pairs.
type Panel []Observation

// Axis selects the partitioning dimension.
type Axis int

const (
	// CrossSection groups observations sharing the same date.
	CrossSection Axis = iota
	// TimeSeries groups observations sharing the same symbol.
	TimeSeries
)

// ParseAxis converts an axis name from file names or URLs back to an Axis.
func ParseAxis(name string) (Axis, error) {
	switch name {
	case "cross_section":
		return CrossSection, nil
	case "time_series":
		return TimeSeries, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", name)
	}
}

// String returns the axis name used in file names and log fields.
func (a Axis) String() string {
	switch a {
	case CrossSection:
		return "cross_section"
	case TimeSeries:
		return "time_series"
	default:
		return "unknown"
	}
}

// Partition is a subset of the panel sharing one key value along the
// chosen axis: a formatted date for CrossSection, a symbol for TimeSeries.
type Partition struct {
	Key  string
	Rows []Observation
}

// Key returns the partition key an observation belongs to on the given axis.
func (o Observation) Key(axis Axis) string {
	if axis == CrossSection {
		return o.Date.Format(DateFormat)
	}
	return o.Symbol
}
