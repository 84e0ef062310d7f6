// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package model

import (
	"errors"
	"fmt"

	"github.com/hrautila/cvx"
	"github.com/hrautila/matrix"

	"github.com/coneopt/optdesign/solver"
)

// Solution carries the primal result of one LP solve over a model.
type Solution struct {
	Objective float64

	m      *Model
	values map[int]float64
}

// Value returns the optimal value of v, false when v is not a live
// variable of the solved model.
func (s *Solution) Value(v Variable) (float64, bool) {
	if s.m == nil || !s.m.IsValid(v) {
		return 0, false
	}
	val, ok := s.values[v.id]
	return val, ok
}

// Solve lowers the model to the standard LP form
//
//	minimize    c'*x
//	subject to  G*x <= h
//	            A*x  = b
//
// and delegates it to cvx.Lp. Inequality constraints and bounds become
// rows of G, equality constraints and fixed variables rows of A. The
// terminal status is mapped one to one; any state other than Optimal is
// returned as NonOptimalError.
func (m *Model) Solve(opts solver.Options) (*Solution, error) {
	vars := m.Variables()
	if len(vars) == 0 {
		return nil, errors.New("model: no variables to solve over")
	}
	col := make(map[int]int, len(vars))
	for j, v := range vars {
		col[v.id] = j
	}
	n := len(vars)

	var hdata, bdata []float64
	var grows, arows [][]float64

	ineq := func(coef map[int]float64, rhs float64) {
		row := make([]float64, n)
		for id, a := range coef {
			row[col[id]] = a
		}
		grows = append(grows, row)
		hdata = append(hdata, rhs)
	}
	eq := func(coef map[int]float64, rhs float64) {
		row := make([]float64, n)
		for id, a := range coef {
			row[col[id]] = a
		}
		arows = append(arows, row)
		bdata = append(bdata, rhs)
	}

	for _, c := range m.Constraints() {
		cr := &m.cons[c.id]
		switch cr.rel {
		case LessEqual:
			ineq(cr.coef, cr.rhs)
		case GreaterEqual:
			neg := make(map[int]float64, len(cr.coef))
			for id, a := range cr.coef {
				neg[id] = -a
			}
			ineq(neg, -cr.rhs)
		case Equal:
			eq(cr.coef, cr.rhs)
		}
	}
	for _, v := range vars {
		vr := &m.vars[v.id]
		switch vr.state {
		case Fixed:
			eq(map[int]float64{v.id: 1.0}, vr.fixval)
		default:
			if m.HasLower(v) {
				ineq(map[int]float64{v.id: -1.0}, -vr.lower)
			}
			if m.HasUpper(v) {
				ineq(map[int]float64{v.id: 1.0}, vr.upper)
			}
		}
	}
	if len(grows) == 0 {
		return nil, errors.New("model: LP lowering needs at least one bound or inequality constraint")
	}

	cdata := make([]float64, n)
	for id, a := range m.objCoef {
		if j, ok := col[id]; ok {
			cdata[j] = a
			if m.sense == Maximize {
				cdata[j] = -a
			}
		}
	}

	// Assemble column major: table entry j is column j of G.
	gcols := make([][]float64, n)
	for j := 0; j < n; j++ {
		gc := make([]float64, len(grows))
		for i := range grows {
			gc[i] = grows[i][j]
		}
		gcols[j] = gc
	}
	c := matrix.FloatVector(cdata)
	G := matrix.FloatMatrixFromTable(gcols, matrix.ColumnOrder)
	h := matrix.FloatVector(hdata)

	var A, b *matrix.FloatMatrix
	if len(arows) > 0 {
		acols := make([][]float64, n)
		for j := 0; j < n; j++ {
			ac := make([]float64, len(arows))
			for i := range arows {
				ac[i] = arows[i][j]
			}
			acols[j] = ac
		}
		A = matrix.FloatMatrixFromTable(acols, matrix.ColumnOrder)
		b = matrix.FloatVector(bdata)
	}

	sol, err := cvx.Lp(c, G, h, A, b, opts.CvxOptions(), nil, nil)
	st := solver.StatusOf(sol, err)
	if st != solver.Optimal {
		opts.Report("lp", st, 0)
		return nil, &solver.NonOptimalError{Problem: "lp", Status: st}
	}

	x := sol.Result.At("x")[0]
	if x.NumElements() != n {
		return nil, fmt.Errorf("model: solver returned %d values for %d variables", x.NumElements(), n)
	}
	res := &Solution{m: m, values: make(map[int]float64, n)}
	for _, v := range vars {
		res.values[v.id] = x.GetIndex(col[v.id])
	}
	res.Objective = m.objConst
	for id, a := range m.objCoef {
		if _, ok := col[id]; ok {
			res.Objective += a * res.values[id]
		}
	}
	opts.Report("lp", st, res.Objective)
	return res, nil
}
