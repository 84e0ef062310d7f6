// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package design

import (
	"math"

	"github.com/hrautila/cvx"
	"github.com/hrautila/cvx/sets"
	"github.com/hrautila/linalg/lapack"
	"github.com/hrautila/matrix"

	"github.com/coneopt/optdesign/solver"
)

// detProg is the D-optimal design as a convex program with nonlinear
// objective
//
//	minimize    f(λ) = -log det Σ λ_i v_i v_i'
//	subject to  0 <= λ <= cap, Σ λ <= budget
//
// implementing the cvx.ConvexProg interface. Gradient and Hessian come
// from W = M(λ)^-1 V:
//
//	df_i   = -v_i' M^-1 v_i
//	H_ij   = (v_i' M^-1 v_j)^2
func detProgNew(vs *VectorSet, par Params) *detProg {
	p := vs.p
	nl := 2*p + 1

	gcols := make([][]float64, p)
	for i := 0; i < p; i++ {
		gcols[i] = allocColumn(make([]float64, nl), i, p)
	}
	dims := sets.NewDimensionSet("l", "q", "s")
	dims.Set("l", []int{nl})
	dims.Set("q", []int{})
	dims.Set("s", []int{})

	return &detProg{
		vs:   vs,
		par:  par,
		G:    matrix.FloatMatrixFromTable(gcols, matrix.ColumnOrder),
		h:    matrix.FloatVector(allocRHS(vs, par)),
		dims: dims,
	}
}

type detProg struct {
	vs   *VectorSet
	par  Params
	G    *matrix.FloatMatrix
	h    *matrix.FloatMatrix
	dims *sets.DimensionSet
}

func (d *detProg) F0() (mnl int, x0 *matrix.FloatMatrix, err error) {
	// Strictly feasible start: half of the uniform spread, clipped by
	// the per-experiment cap.
	v := d.par.Budget / float64(d.vs.p)
	if d.par.Cap < v {
		v = d.par.Cap
	}
	return 0, matrix.FloatWithValue(d.vs.p, 1, 0.5*v), nil
}

// eval factors M(λ) and returns f = -log det M and W = M^-1 V.
func (d *detProg) eval(x *matrix.FloatMatrix) (f float64, W *matrix.FloatMatrix, err error) {
	lambda := x.FloatArray()
	M := matrix.FloatMatrixFromTable(d.vs.information(lambda), matrix.ColumnOrder)
	if err = lapack.Potrf(M); err != nil {
		// Not positive definite: outside the objective's domain.
		return 0, nil, err
	}
	for k := 0; k < d.vs.q; k++ {
		f -= 2.0 * math.Log(M.GetAt(k, k))
	}
	W = d.vs.Matrix()
	if err = lapack.Potrs(M, W); err != nil {
		return 0, nil, err
	}
	return f, W, nil
}

func (d *detProg) F1(x *matrix.FloatMatrix) (f, Df *matrix.FloatMatrix, err error) {
	fval, W, err := d.eval(x)
	if err != nil {
		return nil, nil, err
	}
	df := make([]float64, d.vs.p)
	for i, v := range d.vs.vecs {
		for r := 0; r < d.vs.q; r++ {
			df[i] -= v[r] * W.GetAt(r, i)
		}
	}
	f = matrix.FloatValue(fval)
	Df = matrix.FloatVector(df).Transpose()
	return f, Df, nil
}

func (d *detProg) F2(x, z *matrix.FloatMatrix) (f, Df, H *matrix.FloatMatrix, err error) {
	f, Df, err = d.F1(x)
	if err != nil {
		return nil, nil, nil, err
	}
	_, W, err := d.eval(x)
	if err != nil {
		return nil, nil, nil, err
	}
	z0 := z.GetIndex(0)
	p, q := d.vs.p, d.vs.q
	hcols := make([][]float64, p)
	for j := 0; j < p; j++ {
		hc := make([]float64, p)
		for i := 0; i < p; i++ {
			var s float64
			for r := 0; r < q; r++ {
				s += d.vs.vecs[i][r] * W.GetAt(r, j)
			}
			hc[i] = z0 * s * s
		}
		hcols[j] = hc
	}
	H = matrix.FloatMatrixFromTable(hcols, matrix.ColumnOrder)
	return f, Df, H, nil
}

// DOptimal formulates the D-optimal design: maximize log det M(λ) subject
// to the allocation constraints. The reported objective is the log
// determinant of the information matrix at the optimum.
func DOptimal(vs *VectorSet, par Params) (*Design, error) {
	if err := validate(vs, par); err != nil {
		return nil, err
	}
	return &Design{kind: KindD, vs: vs, par: par, det: detProgNew(vs, par)}, nil
}

func (d *Design) solveDet(opts solver.Options) (*Result, error) {
	dp := d.det
	sol, err := cvx.Cp(dp, dp.G, dp.h, nil, nil, dp.dims, opts.CvxOptions())
	st := solver.StatusOf(sol, err)
	if st != solver.Optimal {
		opts.Report(d.kind.String(), st, 0)
		return nil, &solver.NonOptimalError{Problem: d.kind.String(), Status: st}
	}

	x := sol.Result.At("x")[0]
	res := &Result{Allocation: append([]float64(nil), x.FloatArray()...)}
	fval, _, err := dp.eval(x)
	if err != nil {
		return nil, err
	}
	res.Objective = -fval
	opts.Report(d.kind.String(), st, res.Objective)
	return res, nil
}
