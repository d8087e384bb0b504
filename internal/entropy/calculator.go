package entropy

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"entropyx/internal/panel"
)

// Calculator runs the per-partition statistics pass over a panel.
type Calculator struct {
	estimator   Estimator
	logger      *slog.Logger
	parallelism int
}

// NewCalculator creates a calculator using the given estimator. A nil
// estimator falls back to the default k-NN estimator.
func NewCalculator(estimator Estimator, logger *slog.Logger) *Calculator {
	if estimator == nil {
		estimator = NewKNNEstimator(DefaultNeighbors)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		estimator:   estimator,
		logger:      logger,
		parallelism: DefaultParallelism,
	}
}

// SetParallelism bounds the number of partitions computed concurrently.
// Values below 1 force sequential computation.
func (c *Calculator) SetParallelism(n int) {
	if n < 1 {
		n = 1
	}
	c.parallelism = n
}

// Compute partitions the panel along the given axis and computes one
// PartitionStats per partition. Partitions are independent, so they are
// computed concurrently with each worker writing a distinct result index;
// estimator failures inside a partition are absorbed as NaN fields and
// counted, never aborting the pass.
func (c *Calculator) Compute(ctx context.Context, pnl panel.Panel, axis panel.Axis) (*ResultSet, error) {
	start := time.Now()

	if len(pnl) == 0 {
		return nil, fmt.Errorf("empty panel")
	}

	parts := pnl.GroupBy(axis)
	c.logger.InfoContext(ctx, "starting statistics pass",
		"axis", axis.String(),
		"observations", len(pnl),
		"partitions", len(parts),
		"parallelism", c.parallelism,
	)

	stats := make([]PartitionStats, len(parts))
	var failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i := range parts {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			stats[i] = c.computePartition(gctx, parts[i], &failures)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("statistics pass aborted: %w", err)
	}

	rs := &ResultSet{
		Axis:              axis,
		Stats:             stats,
		EstimatorFailures: int(failures.Load()),
	}

	c.logger.InfoContext(ctx, "statistics pass completed",
		"axis", axis.String(),
		"partitions", len(parts),
		"estimator_failures", rs.EstimatorFailures,
		"duration", time.Since(start),
	)
	return rs, nil
}

// computePartition computes the four statistics for one partition.
func (c *Calculator) computePartition(ctx context.Context, part panel.Partition, failures *atomic.Int64) PartitionStats {
	n := len(part.Rows)
	x := mat.NewDense(n, panel.NumHorizons, nil)
	xy := mat.NewDense(n, 2*panel.NumHorizons, nil)
	for r, obs := range part.Rows {
		for k := 0; k < panel.NumHorizons; k++ {
			x.Set(r, k, obs.Past[k])
			xy.Set(r, k, obs.Past[k])
			xy.Set(r, panel.NumHorizons+k, obs.Future[k])
		}
	}

	// Sample std dev of the shortest trailing horizon; NaN when n <= 1.
	dispersion := stat.StdDev(mat.Col(nil, 0, x), nil)

	hx, err := c.estimator.Entropy(x)
	if err != nil {
		hx = math.NaN()
		failures.Add(1)
		c.logger.DebugContext(ctx, "entropy estimate failed",
			"partition", part.Key, "n", n, "error", err)
	}

	hxy, err := c.estimator.Entropy(xy)
	if err != nil {
		hxy = math.NaN()
		failures.Add(1)
		c.logger.DebugContext(ctx, "joint entropy estimate failed",
			"partition", part.Key, "n", n, "error", err)
	}

	// Chain rule: H(future|past) = H(XY) - H(X). NaN propagates.
	cond := hxy - hx

	mutualInfo := math.NaN()
	if nmi, err := c.estimator.NMIMatrix(xy, panel.NumHorizons); err != nil {
		failures.Add(1)
		c.logger.DebugContext(ctx, "mutual information estimate failed",
			"partition", part.Key, "n", n, "error", err)
	} else {
		// Entry (0, 1) is the past-block vs future-block pair.
		mutualInfo = nmi.At(0, 1)
	}

	return PartitionStats{
		Key:         part.Key,
		N:           n,
		Dispersion:  dispersion,
		Entropy:     hx,
		CondEntropy: cond,
		MutualInfo:  mutualInfo,
	}
}
