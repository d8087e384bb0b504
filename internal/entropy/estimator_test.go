package entropy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// randomSamples returns an n x d matrix of reproducible standard normal
// samples.
func randomSamples(seed int64, n, d int) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*d)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(n, d, data)
}

func TestKNNEstimator_EntropyDeterministic(t *testing.T) {
	est := NewKNNEstimator(3)
	samples := randomSamples(1, 50, 4)

	h1, err := est.Entropy(samples)
	require.NoError(t, err)
	h2, err := est.Entropy(samples)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.False(t, math.IsNaN(h1))
	assert.False(t, math.IsInf(h1, 0))
}

func TestKNNEstimator_EntropyScaling(t *testing.T) {
	// Scaling every sample by c shifts differential entropy by exactly
	// d*log(c): all neighbor distances scale by c, nothing else changes.
	est := NewKNNEstimator(3)
	samples := randomSamples(2, 60, 4)

	h, err := est.Entropy(samples)
	require.NoError(t, err)

	const c = 2.5
	var scaled mat.Dense
	scaled.Scale(c, samples)
	hScaled, err := est.Entropy(&scaled)
	require.NoError(t, err)

	assert.InDelta(t, h+4*math.Log(c), hScaled, 1e-9)
}

func TestKNNEstimator_EntropyErrors(t *testing.T) {
	tests := []struct {
		name    string
		samples *mat.Dense
		k       int
		errMsg  string
	}{
		{
			name:    "too few samples",
			samples: randomSamples(3, 3, 4),
			k:       3,
			errMsg:  "need more than 3 samples",
		},
		{
			name: "duplicate rows",
			samples: mat.NewDense(4, 2, []float64{
				1, 2,
				1, 2,
				3, 4,
				5, 6,
			}),
			k:      1,
			errMsg: "duplicate rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKNNEstimator(tt.k).Entropy(tt.samples)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewKNNEstimator_InvalidK(t *testing.T) {
	assert.Equal(t, DefaultNeighbors, NewKNNEstimator(0).k)
	assert.Equal(t, DefaultNeighbors, NewKNNEstimator(-5).k)
	assert.Equal(t, 7, NewKNNEstimator(7).k)
}

func TestKNNEstimator_NMIMatrix(t *testing.T) {
	est := NewKNNEstimator(3)
	samples := randomSamples(4, 80, 8)

	nmi, err := est.NMIMatrix(samples, 4)
	require.NoError(t, err)

	r, c := nmi.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)

	assert.Equal(t, 1.0, nmi.At(0, 0))
	assert.Equal(t, 1.0, nmi.At(1, 1))
	assert.Equal(t, nmi.At(0, 1), nmi.At(1, 0))
	assert.GreaterOrEqual(t, nmi.At(0, 1), 0.0)
	assert.LessOrEqual(t, nmi.At(0, 1), 1.0)
}

func TestKNNEstimator_NMIMatrixDependentBlocks(t *testing.T) {
	// A block that is a noisy copy of the other should carry more mutual
	// information than an independent one.
	est := NewKNNEstimator(3)
	rng := rand.New(rand.NewSource(5))

	const n = 100
	dependent := mat.NewDense(n, 4, nil)
	independent := mat.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < 2; j++ {
			x := rng.NormFloat64()
			dependent.Set(i, j, x)
			dependent.Set(i, 2+j, x+0.05*rng.NormFloat64())
			independent.Set(i, j, x)
			independent.Set(i, 2+j, rng.NormFloat64())
		}
	}

	nmiDep, err := est.NMIMatrix(dependent, 2)
	require.NoError(t, err)
	nmiInd, err := est.NMIMatrix(independent, 2)
	require.NoError(t, err)

	assert.Greater(t, nmiDep.At(0, 1), nmiInd.At(0, 1))
}

func TestKNNEstimator_NMIMatrixErrors(t *testing.T) {
	est := NewKNNEstimator(3)

	tests := []struct {
		name   string
		cols   int
		split  int
		errMsg string
	}{
		{name: "split does not divide columns", cols: 8, split: 3, errMsg: "does not divide"},
		{name: "single block", cols: 4, split: 4, errMsg: "at least 2 column blocks"},
		{name: "zero split", cols: 8, split: 0, errMsg: "does not divide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := est.NMIMatrix(randomSamples(6, 40, tt.cols), tt.split)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
