// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package design

import (
	"github.com/hrautila/cvx"
	"github.com/hrautila/cvx/sets"
	"github.com/hrautila/matrix"

	"github.com/coneopt/optdesign/solver"
)

// Params bounds the allocation: 0 <= λ_i <= Cap for every candidate and
// Σ λ_i <= Budget.
type Params struct {
	Budget float64
	Cap    float64
}

// Kind selects the scalarization of the error covariance.
type Kind int

const (
	// KindA minimizes the trace of the error covariance.
	KindA Kind = iota
	// KindE maximizes the smallest eigenvalue of the information matrix.
	KindE
	// KindD maximizes the log determinant of the information matrix.
	KindD
)

func (k Kind) String() string {
	switch k {
	case KindA:
		return "A-optimal"
	case KindE:
		return "E-optimal"
	}
	return "D-optimal"
}

// Result is the outcome of an optimal solve: the scalarized objective and
// the allocation weights, entry i matching candidate i of the vector set.
type Result struct {
	Objective  float64
	Allocation []float64
}

// Design is one formulated experiment design problem, ready to solve. The
// formulation is symbolic; nothing touches the solver until Solve.
type Design struct {
	kind Kind
	vs   *VectorSet
	par  Params

	cone *coneProgram // A and E scalarizations
	det  *detProg     // D scalarization
}

// Kind returns the design's scalarization.
func (d *Design) Kind() Kind { return d.kind }

// coneProgram is a cone LP in the solver's standard form
//
//	minimize    c'*x
//	subject to  G*x + s = h,  s in C
//
// with C a product of a nonnegative orthant and semidefinite cones.
// Semidefinite blocks are stored as full column major m^2 vectors, the
// convention cvx.ConeLp expects.
type coneProgram struct {
	c    *matrix.FloatMatrix
	G    *matrix.FloatMatrix
	h    *matrix.FloatMatrix
	dims *sets.DimensionSet
}

func validate(vs *VectorSet, par Params) error {
	if vs == nil || vs.p == 0 {
		return &DimensionMismatchError{Field: "vectors", Detail: "empty vector set"}
	}
	if par.Budget <= 0 {
		return &DimensionMismatchError{Field: "budget", Detail: "total budget must be positive"}
	}
	if par.Cap <= 0 {
		return &DimensionMismatchError{Field: "cap", Detail: "per-experiment cap must be positive"}
	}
	if par.Cap*float64(vs.p) < par.Budget {
		return &DimensionMismatchError{Field: "cap", Detail: "cap*p is below the budget; no allocation can use it"}
	}
	return nil
}

// allocColumn fills the shared linear rows of candidate i's G column:
//
//	-λ_i <= 0,  λ_i <= cap,  Σ λ_i <= budget
//
// occupying the first 2p+1 rows; allocRHS produces the matching h entries.
func allocColumn(col []float64, i, p int) []float64 {
	col[i] = -1.0
	col[p+i] = 1.0
	col[2*p] = 1.0
	return col
}

func allocRHS(vs *VectorSet, par Params) []float64 {
	h := make([]float64, 2*vs.p+1)
	for i := 0; i < vs.p; i++ {
		h[vs.p+i] = par.Cap
	}
	h[2*vs.p] = par.Budget
	return h
}

// Solve hands the formulated problem to cvx and maps the terminal status.
// Only an Optimal status yields a Result; infeasible, unbounded and solver
// error terminations surface as NonOptimalError with the mapped status.
func (d *Design) Solve(opts solver.Options) (*Result, error) {
	if d.det != nil {
		return d.solveDet(opts)
	}
	sol, err := cvx.ConeLp(d.cone.c, d.cone.G, d.cone.h, nil, nil, d.cone.dims,
		opts.CvxOptions(), nil, nil)
	st := solver.StatusOf(sol, err)
	if st != solver.Optimal {
		opts.Report(d.kind.String(), st, 0)
		return nil, &solver.NonOptimalError{Problem: d.kind.String(), Status: st}
	}

	x := sol.Result.At("x")[0]
	res := &Result{Allocation: make([]float64, d.vs.p)}
	for i := 0; i < d.vs.p; i++ {
		res.Allocation[i] = x.GetIndex(i)
	}
	switch d.kind {
	case KindA:
		// minimize Σ u_k; the u block trails the allocation.
		for k := 0; k < d.vs.q; k++ {
			res.Objective += x.GetIndex(d.vs.p + k)
		}
	case KindE:
		// maximize t, lowered as minimize -t.
		res.Objective = x.GetIndex(d.vs.p)
	}
	opts.Report(d.kind.String(), st, res.Objective)
	return res, nil
}
