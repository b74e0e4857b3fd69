package neat

import "errors"

// Sentinel errors for the four-kind taxonomy used throughout this package.
// Callers should compare with errors.Is; wrapped instances carry additional
// context via fmt.Errorf("...: %w", ...).
var (
	// ErrForbiddenEdit names an illegal structural edit (cycle, into-input,
	// out-of-output). No function in this package returns it:
	// Genome.AddConnection reports a forbidden edge by returning false, and
	// the mutation operators treat that as a no-op.
	ErrForbiddenEdit = errors.New("neat: forbidden structural edit")

	// ErrCrossoverInfeasible marks a recombination whose child graph is not
	// a DAG. Crossover returns a nil genome in this case; this sentinel
	// exists for callers that want to log or count the event.
	ErrCrossoverInfeasible = errors.New("neat: crossover produced a cyclic genome")

	// ErrConfigurationError marks a configuration value rejected at load or
	// engine-start time.
	ErrConfigurationError = errors.New("neat: invalid configuration")

	// ErrContractViolation marks a caller contract breach: wrong input
	// arity to Activate, or a fitness function returning NaN.
	ErrContractViolation = errors.New("neat: contract violation")
)
