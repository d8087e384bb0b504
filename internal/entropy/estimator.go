package entropy

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
)

// Estimator estimates differential entropy and normalized mutual
// information from matrices of continuous i.i.d. samples (rows = samples,
// columns = dimensions). Implementations return an error on degenerate
// input instead of panicking or silently producing garbage; callers decide
// whether a failure is fatal.
type Estimator interface {
	// Entropy returns a differential entropy estimate for the samples.
	Entropy(samples mat.Matrix) (float64, error)

	// NMIMatrix splits the sample columns into consecutive blocks of
	// `split` dimensions and returns the matrix of pairwise normalized
	// mutual information between blocks. Entry (i, j) is the NMI between
	// block i and block j; the diagonal is 1.
	NMIMatrix(samples mat.Matrix, split int) (*mat.Dense, error)
}

// KNNEstimator is the default Estimator: a Kozachenko-Leonenko
// k-nearest-neighbor differential entropy estimator with Euclidean
// distances. Mutual information is derived from the entropy identity
// I(X;Y) = H(X) + H(Y) - H(XY) and normalized by sqrt(H(X)*H(Y)).
//
// The estimator is nonparametric and biased for small sample counts; the
// bias is inherited by everything computed from it. It is deterministic:
// no noise is added to break ties, so exactly duplicated sample rows
// produce a zero neighbor distance and an error.
type KNNEstimator struct {
	k int
}

// NewKNNEstimator creates an estimator using the k-th nearest neighbor.
// k values below 1 fall back to DefaultNeighbors.
func NewKNNEstimator(k int) *KNNEstimator {
	if k < 1 {
		k = DefaultNeighbors
	}
	return &KNNEstimator{k: k}
}

// Entropy implements the Kozachenko-Leonenko estimate
//
//	H ≈ ψ(N) − ψ(k) + log V_d + (d/N) Σ log ε_i
//
// where ε_i is the distance from sample i to its k-th nearest neighbor and
// V_d is the volume of the d-dimensional unit ball.
func (e *KNNEstimator) Entropy(samples mat.Matrix) (float64, error) {
	n, d := samples.Dims()
	if n <= e.k {
		return 0, fmt.Errorf("need more than %d samples for k=%d, got %d", e.k, e.k, n)
	}

	rows := denseRows(samples)

	sumLog := 0.0
	for i := range rows {
		eps, err := kthNeighborDistance(rows, i, e.k)
		if err != nil {
			return 0, err
		}
		sumLog += math.Log(eps)
	}

	fd := float64(d)
	h := mathext.Digamma(float64(n)) - mathext.Digamma(float64(e.k)) +
		logUnitBallVolume(d) + fd/float64(n)*sumLog
	return h, nil
}

// NMIMatrix computes pairwise normalized mutual information between the
// consecutive column blocks of width split.
func (e *KNNEstimator) NMIMatrix(samples mat.Matrix, split int) (*mat.Dense, error) {
	n, c := samples.Dims()
	if split < 1 || c%split != 0 {
		return nil, fmt.Errorf("split %d does not divide %d columns", split, c)
	}
	blocks := c / split
	if blocks < 2 {
		return nil, fmt.Errorf("need at least 2 column blocks, got %d", blocks)
	}

	// Marginal entropies per block.
	marginal := make([]float64, blocks)
	for b := 0; b < blocks; b++ {
		h, err := e.Entropy(columnBlock(samples, n, b*split, split))
		if err != nil {
			return nil, fmt.Errorf("block %d entropy: %w", b, err)
		}
		if h <= 0 {
			return nil, fmt.Errorf("block %d has non-positive entropy %.6f, normalization undefined", b, h)
		}
		marginal[b] = h
	}

	out := mat.NewDense(blocks, blocks, nil)
	for i := 0; i < blocks; i++ {
		out.Set(i, i, 1)
		for j := i + 1; j < blocks; j++ {
			joint, err := e.Entropy(columnPair(samples, n, i*split, j*split, split))
			if err != nil {
				return nil, fmt.Errorf("blocks %d,%d joint entropy: %w", i, j, err)
			}
			mi := marginal[i] + marginal[j] - joint
			nmi := mi / math.Sqrt(marginal[i]*marginal[j])
			// The identity-based estimate can drift outside [0,1] from
			// small-sample bias; the normalized measure is defined on it.
			nmi = math.Max(0, math.Min(1, nmi))
			out.Set(i, j, nmi)
			out.Set(j, i, nmi)
		}
	}
	return out, nil
}

// kthNeighborDistance returns the Euclidean distance from rows[i] to its
// k-th nearest neighbor. A zero distance means duplicated sample rows,
// which the estimator cannot handle.
func kthNeighborDistance(rows [][]float64, i, k int) (float64, error) {
	dists := make([]float64, 0, len(rows)-1)
	for j := range rows {
		if j == i {
			continue
		}
		dists = append(dists, euclidean(rows[i], rows[j]))
	}
	sort.Float64s(dists)
	eps := dists[k-1]
	if eps <= 0 {
		return 0, fmt.Errorf("degenerate samples: duplicate rows at zero distance")
	}
	return eps, nil
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// logUnitBallVolume returns log of the d-dimensional unit ball volume,
// log(π^(d/2) / Γ(d/2 + 1)).
func logUnitBallVolume(d int) float64 {
	lg, _ := math.Lgamma(float64(d)/2 + 1)
	return float64(d)/2*math.Log(math.Pi) - lg
}

// denseRows copies a matrix into per-row slices for distance computations.
func denseRows(m mat.Matrix) [][]float64 {
	n, d := m.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, d)
		for j := 0; j < d; j++ {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

// columnBlock extracts columns [start, start+width) into a new matrix.
func columnBlock(m mat.Matrix, n, start, width int) *mat.Dense {
	out := mat.NewDense(n, width, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < width; j++ {
			out.Set(i, j, m.At(i, start+j))
		}
	}
	return out
}

// columnPair extracts two equal-width column blocks side by side.
func columnPair(m mat.Matrix, n, startA, startB, width int) *mat.Dense {
	out := mat.NewDense(n, 2*width, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < width; j++ {
			out.Set(i, j, m.At(i, startA+j))
			out.Set(i, width+j, m.At(i, startB+j))
		}
	}
	return out
}
