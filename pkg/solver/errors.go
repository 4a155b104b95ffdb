package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBuilt indicates Solve was called before a successful Build.
	ErrNotBuilt = errors.New("solver: engine not built; call Build first")
	// ErrAlreadyBuilt indicates Build was called twice on one engine.
	ErrAlreadyBuilt = errors.New("solver: engine already built")
	// ErrNoFeasibleSolution indicates extra constraints excluded every
	// complete assignment, including the all-do-nothing baseline. The
	// budget constraint alone can never cause this.
	ErrNoFeasibleSolution = errors.New("solver: no assignment satisfies the extra constraints")
)

// ConfigError indicates an invalid budget, discount rate, or horizon,
// rejected before any search runs.
type ConfigError struct {
	Param  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("solver: invalid config %s: %s", e.Param, e.Detail)
}
