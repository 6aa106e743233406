package proposal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/mcmc/internal/rand"
)

// steps draws n proposals from x and returns the per-coordinate offsets.
func steps(p interface{ Propose([]float64) []float64 }, x []float64, n int) [][]float64 {
	cols := make([][]float64, len(x))
	for i := 0; i < n; i++ {
		cand := p.Propose(x)
		for d := range x {
			cols[d] = append(cols[d], cand[d]-x[d])
		}
	}
	return cols
}

func TestRandomWalkMoments(t *testing.T) {
	w, err := NewRandomWalk(0.5, rand.NewMT19937(42))
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.Scale())

	x := []float64{1, 2}
	for d, col := range steps(w, x, 20000) {
		mean, std := stat.MeanStdDev(col, nil)
		assert.InDelta(t, 0, mean, 0.02, "coordinate %d", d)
		assert.InDelta(t, 0.5, std, 0.02, "coordinate %d", d)
	}
	assert.Equal(t, []float64{1, 2}, x, "Propose must not modify its input")
}

func TestUniformWalkBounds(t *testing.T) {
	w, err := NewUniformWalk(2, rand.NewMT19937(7))
	require.NoError(t, err)

	for _, col := range steps(w, []float64{0, 10, -3}, 5000) {
		for _, s := range col {
			require.True(t, s >= -1 && s < 1, "step %v outside window", s)
		}
		// U(-1,1) has variance 1/3
		assert.InDelta(t, 1.0/3, stat.Variance(col, nil), 0.02)
	}
}

func TestCorrelatedWalkCovariance(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{1, 0.8, 0.8, 1})
	w, err := NewCorrelatedWalk(cov, rand.NewMT19937(3))
	require.NoError(t, err)
	assert.Equal(t, 2, w.Dim())

	cols := steps(w, []float64{5, -5}, 20000)
	assert.InDelta(t, 0.8, stat.Correlation(cols[0], cols[1], nil), 0.03)

	assert.Nil(t, w.Propose([]float64{1, 2, 3}))
}

func TestConstructorErrors(t *testing.T) {
	src := rand.NewMT19937(1)

	_, err := NewRandomWalk(0, src)
	assert.Error(t, err)
	_, err = NewRandomWalk(math.NaN(), src)
	assert.Error(t, err)
	_, err = NewUniformWalk(-1, src)
	assert.Error(t, err)
	_, err = NewUniformWalk(math.Inf(1), src)
	assert.Error(t, err)
	_, err = NewCorrelatedWalk(mat.NewSymDense(2, []float64{1, 2, 2, 1}), src)
	assert.Error(t, err)
}

func TestSameSeedSameProposals(t *testing.T) {
	a, err := NewRandomWalk(1, rand.NewMT19937(11))
	require.NoError(t, err)
	b, err := NewRandomWalk(1, rand.NewMT19937(11))
	require.NoError(t, err)

	x := []float64{0, 0}
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Propose(x), b.Propose(x))
	}
}
