package mcmc_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/mcmc"
	"github.com/nozzle/mcmc/analysis"
	"github.com/nozzle/mcmc/internal/rand"
	"github.com/nozzle/mcmc/proposal"
	"github.com/nozzle/mcmc/target"
)

func newChains(t *testing.T, initials [][]float64) []mcmc.Chain {
	t.Helper()
	chains := make([]mcmc.Chain, len(initials))
	for i, x0 := range initials {
		walk, err := proposal.NewRandomWalk(1.0, rand.NewMT19937(uint32(100+i)))
		require.NoError(t, err)
		chains[i] = mcmc.Chain{
			Initial:  x0,
			Proposal: walk,
			Source:   rand.NewMT19937(uint32(200 + i)),
		}
	}
	return chains
}

func TestRunChainsMatchesSequential(t *testing.T) {
	tgt, err := target.NewIsotropicNormal([]float64{1, 2}, 1)
	require.NoError(t, err)

	initials := [][]float64{{0, 0}, {3, 3}, {-2, 4}, {1, 2}}
	config := mcmc.DefaultConfig()
	config.Iterations = 4000
	config.NumWorkers = 4

	parallel, err := mcmc.RunChains(tgt, newChains(t, initials), config)
	require.NoError(t, err)
	require.Len(t, parallel, len(initials))

	for i, c := range newChains(t, initials) {
		seq, err := mcmc.New(tgt, c.Proposal, config).Run(c.Initial, c.Source)
		require.NoError(t, err)
		assert.Equal(t, seq.Accepted, parallel[i].Accepted, "chain %d", i)
		assert.Equal(t, seq.Chain, parallel[i].Chain, "chain %d", i)
	}
}

func TestRunChainsConverge(t *testing.T) {
	tgt, err := target.NewIsotropicNormal([]float64{1, 2}, 1)
	require.NoError(t, err)

	config := mcmc.DefaultConfig()
	config.Iterations = 10000
	results, err := mcmc.RunChains(tgt, newChains(t, [][]float64{{-3, -3}, {5, 5}, {1, 2}, {0, 6}}), config)
	require.NoError(t, err)

	kept := make([][][]float64, len(results))
	for i, res := range results {
		kept[i], err = analysis.BurnInFraction(res.Chain, analysis.DefaultBurnInFraction)
		require.NoError(t, err)
	}
	rhat, err := analysis.RHat(kept)
	require.NoError(t, err)
	for d, r := range rhat {
		assert.Less(t, r, 1.05, "coordinate %d", d)
	}
}

func TestRunChainsFailure(t *testing.T) {
	tgt := mcmc.LogTargetFunc(func(x []float64) float64 {
		if x[0] > 10 {
			return math.NaN()
		}
		return 0
	})

	chains := newChains(t, [][]float64{{0}, {0}, {0}})
	// Chain 1 starts where every candidate is NaN
	chains[1].Initial = []float64{10}
	chains[2].Initial = []float64{math.NaN()}

	config := mcmc.DefaultConfig()
	config.Iterations = 100
	results, err := mcmc.RunChains(tgt, chains, config)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "chain 1")
	assert.True(t, errors.Is(err, mcmc.ErrNumerical))

	_, err = mcmc.RunChains(tgt, nil, config)
	assert.True(t, errors.Is(err, mcmc.ErrInvalidArgument))

	chains = newChains(t, [][]float64{{0}})
	chains[0].Source = nil
	_, err = mcmc.RunChains(tgt, chains, config)
	assert.True(t, errors.Is(err, mcmc.ErrInvalidArgument))
}
