// Package mcmc implements a random-walk Metropolis-Hastings sampler.
//
// The sampler draws correlated samples from a target distribution that is
// known only up to a normalizing constant. The caller supplies the target's
// log-density, a proposal mechanism, and the uniform source used for the
// accept/reject test, so a run is fully determined by its inputs.
//
// Basic usage:
//
//	tgt, _ := target.NewIsotropicNormal([]float64{1, 2}, 1)
//	walk, _ := proposal.NewRandomWalk(1.0, rand.NewPCG(1, 2))
//	res, err := mcmc.Sample([]float64{1, 2}, 20000, tgt, walk, rand.New(rand.NewPCG(3, 4)))
package mcmc

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LogTarget is an unnormalized log-density. LogProb may return -Inf for
// points outside the support and must not return NaN for valid inputs.
//
// *distmv.Normal from gonum satisfies LogTarget.
type LogTarget interface {
	LogProb(x []float64) float64
}

// LogTargetFunc adapts a plain function to LogTarget.
type LogTargetFunc func(x []float64) float64

// LogProb calls f(x).
func (f LogTargetFunc) LogProb(x []float64) float64 { return f(x) }

// Proposal generates a candidate next state from the current one using its
// own source of randomness. The returned slice must not alias x.
type Proposal interface {
	Propose(x []float64) []float64
}

// ProposalFunc adapts a plain function to Proposal.
type ProposalFunc func(x []float64) []float64

// Propose calls f(x).
func (f ProposalFunc) Propose(x []float64) []float64 { return f(x) }

// Source produces uniform variates in [0, 1). Sources are not assumed to be
// safe for concurrent use.
type Source interface {
	Float64() float64
}

// dimensioner is implemented by targets that know their dimension.
type dimensioner interface {
	Dim() int
}

// progressEvery is how often ProgressCallback fires, in iterations.
const progressEvery = 1000

// Config configures a sampling run.
type Config struct {
	// Iterations is the number of Markov chain steps, and therefore the
	// length of the returned chain.
	// Default: 20000
	Iterations int

	// NumWorkers bounds the goroutines used by RunChains.
	// 0 = auto-detect based on CPU cores.
	// Default: 0
	NumWorkers int

	// Logger receives the acceptance-rate diagnostic.
	// Default: nil (no logging)
	Logger *zap.Logger

	// Verbose logs the diagnostic at info level instead of debug.
	// Default: false
	Verbose bool

	// ProgressCallback is called with (iteration, total) every 1000
	// iterations and once at the end.
	// Default: nil
	ProgressCallback func(iter, total int)
}

// DefaultConfig returns the default sampler configuration.
func DefaultConfig() Config {
	return Config{
		Iterations: 20000,
		NumWorkers: 0,
		Verbose:    false,
	}
}

// Result is the output of a completed run.
type Result struct {
	// Chain holds one state per iteration, excluding the initial state.
	// Rejected iterations repeat the previous state.
	Chain [][]float64

	// Accepted is the number of accepted proposals, in [0, len(Chain)].
	Accepted int
}

// AcceptanceRate returns Accepted / len(Chain).
func (r *Result) AcceptanceRate() float64 {
	if len(r.Chain) == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(len(r.Chain))
}

// Sampler runs Metropolis-Hastings chains for one target and proposal.
type Sampler struct {
	Config Config

	target   LogTarget
	proposal Proposal
}

// New creates a sampler for the given target and proposal.
func New(target LogTarget, proposal Proposal, config Config) *Sampler {
	return &Sampler{
		Config:   config,
		target:   target,
		proposal: proposal,
	}
}

// Sample runs n iterations from initial and returns the full chain.
func Sample(initial []float64, n int, target LogTarget, proposal Proposal, src Source) (*Result, error) {
	config := DefaultConfig()
	config.Iterations = n
	return New(target, proposal, config).Run(initial, src)
}

// Run executes Config.Iterations steps starting at initial. src is consumed
// exactly once per iteration. On error no chain is returned.
func (s *Sampler) Run(initial []float64, src Source) (*Result, error) {
	n := s.Config.Iterations
	if err := s.validate(initial, n, src); err != nil {
		return nil, err
	}

	d := len(initial)
	cur := make([]float64, d)
	copy(cur, initial)

	curLP := s.target.LogProb(cur)
	if math.IsNaN(curLP) {
		return nil, errors.Wrap(ErrNumerical, "log-density of initial state is NaN")
	}
	if math.IsInf(curLP, 0) {
		return nil, errors.Wrapf(ErrInvalidArgument, "log-density of initial state is %v", curLP)
	}

	// One backing array for the whole chain; entries are capped so they
	// cannot grow into each other.
	data := make([]float64, n*d)
	chain := make([][]float64, n)
	accepted := 0

	for i := 0; i < n; i++ {
		cand := s.proposal.Propose(cur)
		if len(cand) != d {
			return nil, errors.Wrapf(ErrInvalidArgument,
				"iteration %d: proposal returned dimension %d, want %d", i, len(cand), d)
		}
		for _, v := range cand {
			if math.IsNaN(v) {
				return nil, errors.Wrapf(ErrNumerical, "iteration %d: proposal returned NaN", i)
			}
		}

		candLP := s.target.LogProb(cand)
		if math.IsNaN(candLP) {
			return nil, errors.Wrapf(ErrNumerical, "iteration %d: log-density of candidate is NaN", i)
		}

		u := src.Float64()
		if accept(candLP, curLP, u) {
			copy(cur, cand)
			curLP = candLP
			accepted++
		}

		entry := data[i*d : (i+1)*d : (i+1)*d]
		copy(entry, cur)
		chain[i] = entry

		if s.Config.ProgressCallback != nil && ((i+1)%progressEvery == 0 || i+1 == n) {
			s.Config.ProgressCallback(i+1, n)
		}
	}

	res := &Result{Chain: chain, Accepted: accepted}
	s.report(res)
	return res, nil
}

// accept is the Metropolis test in log space. A +Inf candidate is always
// accepted, including when the current state is also +Inf. The remaining
// NaN ratio, -Inf-(-Inf), is rejected.
func accept(candLP, curLP, u float64) bool {
	if math.IsInf(candLP, 1) {
		return true
	}
	r := candLP - curLP
	switch {
	case math.IsNaN(r):
		return false
	case math.IsInf(r, 1):
		return true
	default:
		return math.Log(u) < r
	}
}

func (s *Sampler) validate(initial []float64, n int, src Source) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "iterations must be positive, got %d", n)
	}
	if s.target == nil {
		return errors.Wrap(ErrInvalidArgument, "nil target")
	}
	if s.proposal == nil {
		return errors.Wrap(ErrInvalidArgument, "nil proposal")
	}
	if src == nil {
		return errors.Wrap(ErrInvalidArgument, "nil source")
	}
	if len(initial) == 0 {
		return errors.Wrap(ErrInvalidArgument, "empty initial state")
	}
	if dt, ok := s.target.(dimensioner); ok && dt.Dim() != len(initial) {
		return errors.Wrapf(ErrInvalidArgument,
			"initial state has dimension %d, target expects %d", len(initial), dt.Dim())
	}
	for i, v := range initial {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidArgument, "initial state coordinate %d is %v", i, v)
		}
	}
	return nil
}

func (s *Sampler) report(res *Result) {
	if s.Config.Logger == nil {
		return
	}
	level := zap.DebugLevel
	if s.Config.Verbose {
		level = zap.InfoLevel
	}
	if ce := s.Config.Logger.Check(level, "metropolis-hastings run complete"); ce != nil {
		ce.Write(
			zap.Int("iterations", len(res.Chain)),
			zap.Int("accepted", res.Accepted),
			zap.Float64("acceptance_rate", res.AcceptanceRate()),
		)
	}
}
