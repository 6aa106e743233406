// Package proposal provides symmetric random-walk proposals for the sampler.
//
// Each proposal owns its random source and is not safe for concurrent use;
// give every chain its own instance. Because the walks are symmetric, the
// Metropolis acceptance ratio needs no Hastings correction.
package proposal

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomWalk proposes x + N(0, Scale^2 I).
type RandomWalk struct {
	step distuv.Normal
}

// NewRandomWalk returns a Gaussian random walk with the given step scale.
func NewRandomWalk(scale float64, src rand.Source) (*RandomWalk, error) {
	if err := checkPositive("scale", scale); err != nil {
		return nil, err
	}
	return &RandomWalk{step: distuv.Normal{Mu: 0, Sigma: scale, Src: src}}, nil
}

// Scale returns the standard deviation of each coordinate's step.
func (w *RandomWalk) Scale() float64 { return w.step.Sigma }

// Propose returns a new slice; x is not modified.
func (w *RandomWalk) Propose(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + w.step.Rand()
	}
	return out
}

// UniformWalk proposes x + U(-Width/2, Width/2) independently per coordinate.
type UniformWalk struct {
	step distuv.Uniform
}

// NewUniformWalk returns a uniform window random walk.
func NewUniformWalk(width float64, src rand.Source) (*UniformWalk, error) {
	if err := checkPositive("width", width); err != nil {
		return nil, err
	}
	return &UniformWalk{step: distuv.Uniform{Min: -width / 2, Max: width / 2, Src: src}}, nil
}

// Propose returns a new slice; x is not modified.
func (w *UniformWalk) Propose(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + w.step.Rand()
	}
	return out
}

// CorrelatedWalk proposes x + N(0, Sigma) for a full covariance Sigma.
type CorrelatedWalk struct {
	step *distmv.Normal
}

// NewCorrelatedWalk returns a multivariate normal random walk. cov must be
// positive definite.
func NewCorrelatedWalk(cov mat.Symmetric, src rand.Source) (*CorrelatedWalk, error) {
	d := cov.SymmetricDim()
	if d == 0 {
		return nil, errors.New("correlated walk: empty covariance")
	}
	step, ok := distmv.NewNormal(make([]float64, d), cov, src)
	if !ok {
		return nil, errors.New("correlated walk: covariance is not positive definite")
	}
	return &CorrelatedWalk{step: step}, nil
}

// Dim returns the dimension of the steps.
func (w *CorrelatedWalk) Dim() int { return w.step.Dim() }

// Propose returns a new slice; x is not modified. A state of the wrong
// dimension yields a nil candidate, which the sampler reports.
func (w *CorrelatedWalk) Propose(x []float64) []float64 {
	if len(x) != w.step.Dim() {
		return nil
	}
	out := w.step.Rand(nil)
	for i, v := range x {
		out[i] += v
	}
	return out
}

func checkPositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return errors.Errorf("%s must be positive and finite, got %v", name, v)
	}
	return nil
}
