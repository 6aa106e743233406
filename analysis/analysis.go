// Package analysis post-processes sampler chains: burn-in removal, thinning,
// per-coordinate summaries and convergence checks across chains.
//
// A chain is an [][]float64 with one D-length row per iteration. Functions
// return new outer slices but share the rows with their input.
package analysis

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Customary post-processing: discard the first half of
// the chain, then keep every tenth entry.
const (
	DefaultBurnInFraction = 0.5
	DefaultThin           = 10
)

var (
	// ErrEmptyChain is returned when an operation needs at least one entry.
	ErrEmptyChain = errors.New("empty chain")

	// ErrInvalidArgument is returned for out-of-range counts and indices.
	ErrInvalidArgument = errors.New("invalid argument")
)

// BurnIn drops the first n entries. At least one entry must remain.
func BurnIn(chain [][]float64, n int) ([][]float64, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	if n < 0 || n >= len(chain) {
		return nil, errors.Wrapf(ErrInvalidArgument, "burn-in %d for chain of length %d", n, len(chain))
	}
	return chain[n:], nil
}

// BurnInFraction drops the leading frac of the chain, rounded down.
func BurnInFraction(chain [][]float64, frac float64) ([][]float64, error) {
	if !(frac >= 0 && frac < 1) {
		return nil, errors.Wrapf(ErrInvalidArgument, "burn-in fraction %v outside [0, 1)", frac)
	}
	return BurnIn(chain, int(frac*float64(len(chain))))
}

// Thin keeps entries 0, k, 2k, ...
func Thin(chain [][]float64, k int) ([][]float64, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "thinning stride %d", k)
	}
	out := make([][]float64, 0, (len(chain)+k-1)/k)
	for i := 0; i < len(chain); i += k {
		out = append(out, chain[i])
	}
	return out, nil
}

// Prepare applies BurnInFraction then Thin.
func Prepare(chain [][]float64, burnFrac float64, k int) ([][]float64, error) {
	kept, err := BurnInFraction(chain, burnFrac)
	if err != nil {
		return nil, errors.Wrap(err, "burn-in")
	}
	kept, err = Thin(kept, k)
	if err != nil {
		return nil, errors.Wrap(err, "thin")
	}
	return kept, nil
}

// Column extracts coordinate d from every entry.
func Column(chain [][]float64, d int) ([]float64, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	if d < 0 || d >= len(chain[0]) {
		return nil, errors.Wrapf(ErrInvalidArgument, "coordinate %d of dimension %d", d, len(chain[0]))
	}
	col := make([]float64, len(chain))
	for i, row := range chain {
		col[i] = row[d]
	}
	return col, nil
}

// Moves counts the entries that differ from their predecessor, starting from
// initial. For a continuous proposal it equals the accepted count.
func Moves(initial []float64, chain [][]float64) int {
	moves := 0
	prev := initial
	for _, row := range chain {
		if !floats.Equal(prev, row) {
			moves++
		}
		prev = row
	}
	return moves
}

// Means returns the per-coordinate sample mean.
func Means(chain [][]float64) ([]float64, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	means := make([]float64, len(chain[0]))
	for d := range means {
		col, err := Column(chain, d)
		if err != nil {
			return nil, err
		}
		means[d] = stat.Mean(col, nil)
	}
	return means, nil
}

// Summary describes the marginal sample of one coordinate.
type Summary struct {
	Mean       float64
	StdDev     float64
	Skew       float64
	ExKurtosis float64
	Min        float64
	Max        float64
}

// Summarize returns one Summary per coordinate.
func Summarize(chain [][]float64) ([]Summary, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	out := make([]Summary, len(chain[0]))
	for d := range out {
		col, err := Column(chain, d)
		if err != nil {
			return nil, err
		}
		mean, std := stat.MeanStdDev(col, nil)
		out[d] = Summary{
			Mean:       mean,
			StdDev:     std,
			Skew:       stat.Skew(col, nil),
			ExKurtosis: stat.ExKurtosis(col, nil),
			Min:        floats.Min(col),
			Max:        floats.Max(col),
		}
	}
	return out, nil
}

// Covariance returns the sample covariance matrix of the coordinates.
func Covariance(chain [][]float64) (*mat.SymDense, error) {
	if len(chain) < 2 {
		return nil, errors.Wrapf(ErrInvalidArgument, "covariance needs at least 2 entries, got %d", len(chain))
	}
	d := len(chain[0])
	x := mat.NewDense(len(chain), d, nil)
	for i, row := range chain {
		x.SetRow(i, row)
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, x, nil)
	return &cov, nil
}

// RHat returns the split-chain potential scale reduction factor of each
// coordinate. Every chain is halved, and the between-half variance is
// compared with the within-half variance. Values near 1 indicate the chains
// sample the same distribution. Chains must have equal length >= 4.
func RHat(chains [][][]float64) ([]float64, error) {
	if len(chains) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "no chains")
	}
	length := len(chains[0])
	if length < 4 {
		return nil, errors.Wrapf(ErrInvalidArgument, "chains need at least 4 entries, got %d", length)
	}
	dim := len(chains[0][0])
	for i, c := range chains {
		if len(c) != length {
			return nil, errors.Wrapf(ErrInvalidArgument, "chain %d has length %d, want %d", i, len(c), length)
		}
		if len(c[0]) != dim {
			return nil, errors.Wrapf(ErrInvalidArgument, "chain %d has dimension %d, want %d", i, len(c[0]), dim)
		}
	}

	half := length / 2
	var seqs [][][]float64
	for _, c := range chains {
		seqs = append(seqs, c[:half], c[length-half:])
	}

	n := float64(half)
	rhat := make([]float64, dim)
	seqMeans := make([]float64, len(seqs))
	seqVars := make([]float64, len(seqs))
	for d := 0; d < dim; d++ {
		for s, seq := range seqs {
			col, err := Column(seq, d)
			if err != nil {
				return nil, err
			}
			seqMeans[s], seqVars[s] = stat.MeanVariance(col, nil)
		}
		between := n * stat.Variance(seqMeans, nil)
		within := stat.Mean(seqVars, nil)

		switch {
		case within == 0 && between == 0:
			rhat[d] = 1
		case within == 0:
			rhat[d] = math.Inf(1)
		default:
			pooled := (n-1)/n*within + between/n
			rhat[d] = math.Sqrt(pooled / within)
		}
	}
	return rhat, nil
}
