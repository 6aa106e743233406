// Package cli implements the mcmc command line: Metropolis-Hastings runs on a
// Gaussian target and the plain Monte Carlo experiments.
package cli

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds command configuration. Environment variables set the
// defaults; flags override them.
type Config struct {
	// Shared by every command
	Seed      uint32 `env:"MCMC_SEED"`
	Generator string `env:"MCMC_GENERATOR" envDefault:"mt19937"`
	Verbose   bool   `env:"MCMC_VERBOSE"`

	// sample
	Iterations int       `env:"MCMC_ITERATIONS" envDefault:"20000"`
	Scale      float64   `env:"MCMC_SCALE"      envDefault:"1.0"`
	BurnIn     float64   `env:"MCMC_BURN_IN"    envDefault:"0.5"`
	Thin       int       `env:"MCMC_THIN"       envDefault:"10"`
	Chains     int       `env:"MCMC_CHAINS"     envDefault:"1"`
	Workers    int       `env:"MCMC_WORKERS"`
	Mean       []float64 `env:"MCMC_MEAN"       envDefault:"1,2" envSeparator:","`
	Sigma      float64   `env:"MCMC_SIGMA"      envDefault:"1.0"`
	Initial    []float64 `env:"MCMC_INITIAL"    envSeparator:","`
	Output     string    `env:"MCMC_OUTPUT"`

	// pi, integrate, exponential
	Samples int `env:"MCMC_SAMPLES" envDefault:"1000000"`

	// integrate
	Function string  `env:"MCMC_FUNCTION" envDefault:"square"`
	Lower    float64 `env:"MCMC_LOWER"    envDefault:"0"`
	Upper    float64 `env:"MCMC_UPPER"    envDefault:"1"`

	// exponential
	Rate float64 `env:"MCMC_RATE" envDefault:"1.0"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}
