package mcmc

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nozzle/mcmc/internal/parallel"
)

// Chain describes one independent chain for RunChains. Proposal and Source
// belong to this chain alone.
type Chain struct {
	Initial  []float64
	Proposal Proposal
	Source   Source
}

// RunChains runs every chain for config.Iterations steps on up to
// config.NumWorkers goroutines. target and config.ProgressCallback are shared
// and must be safe for concurrent use. If any chain fails, the error of the
// lowest-index failing chain is returned and no results are.
func RunChains(target LogTarget, chains []Chain, config Config) ([]*Result, error) {
	if len(chains) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "no chains")
	}
	for i, c := range chains {
		if c.Proposal == nil || c.Source == nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "chain %d: nil proposal or source", i)
		}
	}

	type outcome struct {
		res *Result
		err error
	}

	workers := parallel.Workers(config.NumWorkers, len(chains))
	outcomes := parallel.ParallelMap(0, len(chains), workers, func(i int) outcome {
		cfg := config
		if config.Logger != nil {
			cfg.Logger = config.Logger.With(zap.Int("chain", i))
		}
		res, err := New(target, chains[i].Proposal, cfg).Run(chains[i].Initial, chains[i].Source)
		return outcome{res: res, err: err}
	})

	results := make([]*Result, len(chains))
	for i, o := range outcomes {
		if o.err != nil {
			return nil, errors.Wrapf(o.err, "chain %d", i)
		}
		results[i] = o.res
	}
	return results, nil
}
