package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nozzle/mcmc/internal/rand"
)

// NewRootCommand builds the mcmc command tree around cfg. Results go to out,
// logs to errOut.
func NewRootCommand(cfg *Config, out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "mcmc",
		Short:         "Metropolis-Hastings sampling and Monte Carlo experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.Uint32Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = draw one from the OS)")
	flags.StringVar(&cfg.Generator, "generator", cfg.Generator, "uniform generator: mt19937 or tausworthe")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "verbose logging")

	root.AddCommand(
		newSampleCommand(cfg),
		newPiCommand(cfg),
		newIntegrateCommand(cfg),
		newExponentialCommand(cfg),
	)
	return root
}

// newLogger returns a JSON logger on w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// resolveSeed returns cfg.Seed, or a fresh one when it is zero.
func resolveSeed(cfg *Config, logger *zap.Logger) (uint32, error) {
	if cfg.Seed != 0 {
		return cfg.Seed, nil
	}
	seed, err := rand.NewSeed()
	if err != nil {
		return 0, err
	}
	logger.Info("using random seed", zap.Uint32("seed", seed))
	return seed, nil
}

// newGenerator seeds the configured generator.
func newGenerator(cfg *Config, seed uint32) (rand.Generator, error) {
	g, err := rand.New(cfg.Generator, seed)
	if err != nil {
		return nil, errors.Wrap(err, "generator")
	}
	return g, nil
}
