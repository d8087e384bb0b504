package entropy

import (
	"entropyx/internal/panel"
)

// Metric names shared by the exporter and the report API.
const (
	MetricDispersion  = "dispersion"
	MetricEntropy     = "entropy"
	MetricCondEntropy = "cond_entropy"
	MetricMutualInfo  = "mutual_info"
)

// MetricNames lists the metrics in report column order.
var MetricNames = []string{MetricDispersion, MetricEntropy, MetricCondEntropy, MetricMutualInfo}

// Defaults for the calculator configuration.
const (
	// DefaultNeighbors is the k used by the default k-NN estimator.
	DefaultNeighbors = 3
	// DefaultParallelism bounds concurrent partition computations.
	DefaultParallelism = 4
)

// PartitionStats holds the four statistics computed for one partition.
// Computed once, never updated; NaN marks a value the estimator could not
// produce for this partition.
type PartitionStats struct {
	Key         string  `json:"key"`
	N           int     `json:"n"`
	Dispersion  float64 `json:"dispersion"`
	Entropy     float64 `json:"entropy"`
	CondEntropy float64 `json:"cond_entropy"`
	MutualInfo  float64 `json:"mutual_info"`
}

// ResultSet collects the per-partition statistics of one computation pass.
type ResultSet struct {
	Axis  panel.Axis       `json:"axis"`
	Stats []PartitionStats `json:"stats"`

	// EstimatorFailures counts individual estimator calls that failed
	// during the pass. Failures are absorbed as NaN fields, so this is the
	// only run-level signal that partitions degraded.
	EstimatorFailures int `json:"estimator_failures"`
}
