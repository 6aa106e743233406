package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/mcmc/internal/rand"
)

func TestEstimatePi(t *testing.T) {
	pi, err := EstimatePi(100000, rand.NewMT19937(42))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, pi, 0.05)

	_, err = EstimatePi(0, rand.NewMT19937(42))
	assert.Error(t, err)
	_, err = EstimatePi(10, nil)
	assert.Error(t, err)
}

func TestIntegrate(t *testing.T) {
	tests := []struct {
		name  string
		f     func(float64) float64
		a, b  float64
		exact float64
	}{
		{name: "square", f: func(x float64) float64 { return x * x }, a: 0, b: 1, exact: 1.0 / 3},
		{name: "sin", f: math.Sin, a: 0, b: math.Pi, exact: 2},
		{name: "exp", f: math.Exp, a: -1, b: 1, exact: math.E - 1/math.E},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := Integrate(tt.f, tt.a, tt.b, 100000, rand.NewMT19937(1))
			require.NoError(t, err)
			assert.InDelta(t, tt.exact, est.Value, 5*est.StdErr)
			assert.Greater(t, est.StdErr, 0.0)
		})
	}
}

func TestIntegrateErrors(t *testing.T) {
	src := rand.NewMT19937(1)
	_, err := Integrate(nil, 0, 1, 10, src)
	assert.Error(t, err)
	_, err = Integrate(math.Sin, 1, 1, 10, src)
	assert.Error(t, err)
	_, err = Integrate(math.Sin, 0, math.Inf(1), 10, src)
	assert.Error(t, err)
	_, err = Integrate(func(float64) float64 { return math.NaN() }, 0, 1, 10, src)
	assert.Error(t, err)
}

func TestExponentialMoments(t *testing.T) {
	xs, err := Exponential(2, 100000, rand.NewMT19937(3))
	require.NoError(t, err)
	mean, std := stat.MeanStdDev(xs, nil)

	// Exp(rate): mean and standard deviation are both 1/rate
	assert.InDelta(t, 0.5, mean, 0.01)
	assert.InDelta(t, 0.5, std, 0.01)
	for _, x := range xs {
		require.GreaterOrEqual(t, x, 0.0)
	}

	_, err = Exponential(0, 10, rand.NewMT19937(3))
	assert.Error(t, err)
}

func TestUniform(t *testing.T) {
	xs, err := Uniform(-2, 3, 50000, rand.NewMT19937(9))
	require.NoError(t, err)
	for _, x := range xs {
		require.True(t, x >= -2 && x < 3)
	}
	assert.InDelta(t, 0.5, stat.Mean(xs, nil), 0.05)

	_, err = Uniform(3, -2, 10, rand.NewMT19937(9))
	assert.Error(t, err)
}
