package mcmc

import "github.com/pkg/errors"

// ErrInvalidArgument reports a non-positive iteration count, a malformed
// initial state, or a dimension mismatch between the state and the
// target or proposal.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNumerical reports a NaN produced by the target or the proposal.
var ErrNumerical = errors.New("numerical error")
