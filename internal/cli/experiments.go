package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/mcmc/montecarlo"
)

// integrands are the functions the integrate command knows by name.
var integrands = map[string]func(float64) float64{
	"square": func(x float64) float64 { return x * x },
	"sin":    math.Sin,
	"exp":    math.Exp,
	"gauss":  func(x float64) float64 { return math.Exp(-x * x) },
}

func integrandNames() string {
	names := make([]string, 0, len(integrands))
	for name := range integrands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// experimentSource resolves the seed and builds the configured generator.
func experimentSource(cfg *Config, logger *zap.Logger) (montecarlo.Source, error) {
	seed, err := resolveSeed(cfg, logger)
	if err != nil {
		return nil, err
	}
	return newGenerator(cfg, seed)
}

func newPiCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pi",
		Short: "Estimate pi by rejection counting in the unit square",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			defer logger.Sync() //nolint:errcheck

			src, err := experimentSource(cfg, logger)
			if err != nil {
				return err
			}
			pi, err := montecarlo.EstimatePi(cfg.Samples, src)
			if err != nil {
				return errors.Wrap(err, "estimate pi")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pi(%d) = %1.16f (error %.2e)\n", cfg.Samples, pi, math.Abs(pi-math.Pi))
			return nil
		},
	}
	cmd.Flags().IntVarP(&cfg.Samples, "samples", "n", cfg.Samples, "number of points")
	return cmd
}

func newIntegrateCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Estimate a one-dimensional integral by uniform Monte Carlo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			defer logger.Sync() //nolint:errcheck

			f, ok := integrands[cfg.Function]
			if !ok {
				return errors.Errorf("unknown function %q (known: %s)", cfg.Function, integrandNames())
			}
			src, err := experimentSource(cfg, logger)
			if err != nil {
				return err
			}
			est, err := montecarlo.Integrate(f, cfg.Lower, cfg.Upper, cfg.Samples, src)
			if err != nil {
				return errors.Wrap(err, "integrate")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "integral of %s over [%g, %g] = %.6f +/- %.6f\n",
				cfg.Function, cfg.Lower, cfg.Upper, est.Value, est.StdErr)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&cfg.Samples, "samples", "n", cfg.Samples, "number of points")
	flags.StringVarP(&cfg.Function, "function", "f", cfg.Function, "integrand: "+integrandNames())
	flags.Float64Var(&cfg.Lower, "lower", cfg.Lower, "lower bound")
	flags.Float64Var(&cfg.Upper, "upper", cfg.Upper, "upper bound")
	return cmd
}

func newExponentialCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exponential",
		Short: "Sample an exponential distribution by inverse transform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			defer logger.Sync() //nolint:errcheck

			src, err := experimentSource(cfg, logger)
			if err != nil {
				return err
			}
			xs, err := montecarlo.Exponential(cfg.Rate, cfg.Samples, src)
			if err != nil {
				return errors.Wrap(err, "exponential")
			}
			mean, std := stat.MeanStdDev(xs, nil)
			fmt.Fprintf(cmd.OutOrStdout(), "exponential(rate=%g): mean=%.6f std=%.6f (expected %.6f)\n",
				cfg.Rate, mean, std, 1/cfg.Rate)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&cfg.Samples, "samples", "n", cfg.Samples, "number of draws")
	flags.Float64Var(&cfg.Rate, "rate", cfg.Rate, "rate parameter")
	return cmd
}
