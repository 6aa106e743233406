// Package montecarlo holds plain Monte Carlo experiments driven by a uniform
// source: pi by rejection counting, integration of a function of one
// variable, and sampling by inverse transform.
package montecarlo

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source produces uniform variates in [0, 1).
type Source interface {
	Float64() float64
}

// EstimatePi draws n points in the unit square and returns four times the
// fraction that land inside the quarter circle.
func EstimatePi(n int, src Source) (float64, error) {
	if err := checkDraws(n, src); err != nil {
		return 0, err
	}
	inside := 0
	for i := 0; i < n; i++ {
		x := src.Float64()
		y := src.Float64()
		if x*x+y*y < 1 {
			inside++
		}
	}
	return 4 * float64(inside) / float64(n), nil
}

// Estimate is a Monte Carlo estimate and its standard error.
type Estimate struct {
	Value  float64
	StdErr float64
}

// Integrate estimates the integral of f over [a, b] as (b-a) * mean(f(U))
// with U uniform on [a, b).
func Integrate(f func(float64) float64, a, b float64, n int, src Source) (Estimate, error) {
	if f == nil {
		return Estimate{}, errors.New("nil integrand")
	}
	if err := checkDraws(n, src); err != nil {
		return Estimate{}, err
	}
	if !(a < b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Estimate{}, errors.Errorf("invalid interval [%v, %v]", a, b)
	}

	width := b - a
	values := make([]float64, n)
	for i := range values {
		values[i] = f(a + width*src.Float64())
	}
	mean, std := stat.MeanStdDev(values, nil)
	if math.IsNaN(mean) {
		return Estimate{}, errors.New("integrand produced NaN")
	}

	est := Estimate{Value: width * mean}
	if n > 1 {
		est.StdErr = width * std / math.Sqrt(float64(n))
	}
	return est, nil
}

// Exponential draws n variates with the given rate by inverse transform,
// x = -ln(1-u) / rate.
func Exponential(rate float64, n int, src Source) ([]float64, error) {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return nil, errors.Errorf("rate must be positive and finite, got %v", rate)
	}
	if err := checkDraws(n, src); err != nil {
		return nil, err
	}
	dist := distuv.Exponential{Rate: rate}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Quantile(src.Float64())
	}
	return out, nil
}

// Uniform draws n variates uniform on [a, b).
func Uniform(a, b float64, n int, src Source) ([]float64, error) {
	if !(a < b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return nil, errors.Errorf("invalid interval [%v, %v)", a, b)
	}
	if err := checkDraws(n, src); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = a + (b-a)*src.Float64()
	}
	return out, nil
}

func checkDraws(n int, src Source) error {
	if n <= 0 {
		return errors.Errorf("number of draws must be positive, got %d", n)
	}
	if src == nil {
		return errors.New("nil source")
	}
	return nil
}
