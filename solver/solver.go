// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

// Package solver bridges this module to the cvx cone solvers: option
// defaults, terminal status mapping and the non-optimal error type shared
// by the model and design packages.
package solver

import (
	"fmt"

	"github.com/hrautila/cvx"
	"go.uber.org/zap"
)

// Status is the terminal state of a delegated solve. The solver's own
// status is mapped one to one and never substituted: a problem the solver
// reports infeasible is reported infeasible here.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	SolverError
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	}
	return "solver error"
}

// DefaultMaxIter is used when Options.MaxIter is zero. The source material
// pins no iteration limit, so the choice is ours; 100 is the cvx default.
const DefaultMaxIter = 100

// Options collects the solver knobs exposed by this module. Zero values
// mean "use the solver's built-in default". Logger, when set, receives a
// structured record of every solve outcome.
type Options struct {
	MaxIter      int
	AbsTol       float64
	RelTol       float64
	FeasTol      float64
	ShowProgress bool
	KKTSolver    string
	Logger       *zap.Logger
}

// CvxOptions expands Options into the cvx.SolverOptions handed to Lp,
// ConeLp and Cp.
func (o Options) CvxOptions() *cvx.SolverOptions {
	var solopts cvx.SolverOptions
	solopts.MaxIter = DefaultMaxIter
	if o.MaxIter > 0 {
		solopts.MaxIter = o.MaxIter
	}
	if o.AbsTol > 0 {
		solopts.AbsTol = o.AbsTol
	}
	if o.RelTol > 0 {
		solopts.RelTol = o.RelTol
	}
	if o.FeasTol > 0 {
		solopts.FeasTol = o.FeasTol
	}
	solopts.ShowProgress = o.ShowProgress
	if len(o.KKTSolver) > 0 {
		solopts.KKTSolverName = o.KKTSolver
	}
	return &solopts
}

// StatusOf maps a cvx solution to the four terminal states. A nil solution
// or an error from the solver counts as SolverError; primal infeasibility
// maps to Infeasible and dual infeasibility to Unbounded.
func StatusOf(sol *cvx.Solution, err error) Status {
	if err != nil || sol == nil {
		return SolverError
	}
	switch sol.Status {
	case cvx.Optimal:
		return Optimal
	case cvx.PrimalInfeasible:
		return Infeasible
	case cvx.DualInfeasible:
		return Unbounded
	}
	return SolverError
}

// Report logs the outcome of one solve when a logger is configured.
func (o Options) Report(problem string, st Status, objective float64) {
	if o.Logger == nil {
		return
	}
	if st == Optimal {
		o.Logger.Info("solve finished",
			zap.String("problem", problem),
			zap.Stringer("status", st),
			zap.Float64("objective", objective))
		return
	}
	o.Logger.Warn("solve failed",
		zap.String("problem", problem),
		zap.Stringer("status", st))
}

// NonOptimalError is returned whenever a delegated solve terminates in any
// state other than Optimal.
type NonOptimalError struct {
	Problem string
	Status  Status
}

func (e *NonOptimalError) Error() string {
	return fmt.Sprintf("solver: %s terminated with status %q", e.Problem, e.Status)
}
