// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package design

import (
	"github.com/hrautila/cvx/sets"
	"github.com/hrautila/matrix"
)

// EOptimal formulates the E-optimal design: maximize the smallest
// eigenvalue of the information matrix, which is the same as minimizing
// the largest eigenvalue of the error covariance. With a scalar t the
// condition is the single semidefinite block
//
//	M(λ) - t*I >= 0
//
// and the objective maximize t, lowered to minimize -t.
func EOptimal(vs *VectorSet, par Params) (*Design, error) {
	if err := validate(vs, par); err != nil {
		return nil, err
	}
	p, q := vs.p, vs.q

	nl := 2*p + 1
	rows := nl + q*q
	nvar := p + 1

	gcols := make([][]float64, nvar)
	for i := 0; i < p; i++ {
		col := allocColumn(make([]float64, rows), i, p)
		v := vs.vecs[i]
		for c := 0; c < q; c++ {
			for r := 0; r < q; r++ {
				col[nl+c*q+r] = -v[r] * v[c]
			}
		}
		gcols[i] = col
	}
	tcol := make([]float64, rows)
	for c := 0; c < q; c++ {
		tcol[nl+c*q+c] = 1.0
	}
	gcols[p] = tcol

	hdata := append(allocRHS(vs, par), make([]float64, q*q)...)

	cdata := make([]float64, nvar)
	cdata[p] = -1.0

	dims := sets.NewDimensionSet("l", "q", "s")
	dims.Set("l", []int{nl})
	dims.Set("q", []int{})
	dims.Set("s", []int{q})

	return &Design{
		kind: KindE,
		vs:   vs,
		par:  par,
		cone: &coneProgram{
			c:    matrix.FloatVector(cdata),
			G:    matrix.FloatMatrixFromTable(gcols, matrix.ColumnOrder),
			h:    matrix.FloatVector(hdata),
			dims: dims,
		},
	}, nil
}
