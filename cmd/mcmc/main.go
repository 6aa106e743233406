// Command mcmc runs Metropolis-Hastings sampling and Monte Carlo experiments.
package main

import (
	"fmt"
	"os"

	"github.com/nozzle/mcmc/internal/cli"
)

func main() {
	cfg, err := cli.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cli.NewRootCommand(&cfg, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
