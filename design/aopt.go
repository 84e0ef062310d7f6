// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package design

import (
	"github.com/hrautila/cvx/sets"
	"github.com/hrautila/matrix"
)

// AOptimal formulates the A-optimal design: minimize the trace of the
// error covariance M(λ)^-1. Each diagonal entry of the inverse is bounded
// by an auxiliary u_k through the Schur complement condition
//
//	[ M(λ)  e_k ]
//	[ e_k'  u_k ]  >= 0
//
// so the problem becomes minimize Σ u_k over q semidefinite blocks of
// order q+1 plus the linear allocation constraints.
func AOptimal(vs *VectorSet, par Params) (*Design, error) {
	if err := validate(vs, par); err != nil {
		return nil, err
	}
	p, q := vs.p, vs.q
	m := q + 1

	nl := 2*p + 1 + q
	rows := nl + q*m*m
	nvar := p + q

	gcols := make([][]float64, nvar)

	// Allocation columns: linear rows plus -v_i*v_i' in the top left
	// q by q corner of every block.
	for i := 0; i < p; i++ {
		col := allocColumn(make([]float64, rows), i, p)
		v := vs.vecs[i]
		for k := 0; k < q; k++ {
			off := nl + k*m*m
			for c := 0; c < q; c++ {
				for r := 0; r < q; r++ {
					col[off+c*m+r] = -v[r] * v[c]
				}
			}
		}
		gcols[i] = col
	}

	// u_k columns: -u_k <= 0 and the bottom right entry of block k.
	for k := 0; k < q; k++ {
		col := make([]float64, rows)
		col[2*p+1+k] = -1.0
		col[nl+k*m*m+q*m+q] = -1.0
		gcols[p+k] = col
	}

	hdata := append(allocRHS(vs, par), make([]float64, q+q*m*m)...)
	// Constant part of block k carries the unit vector pair (e_k, e_k').
	for k := 0; k < q; k++ {
		off := nl + k*m*m
		hdata[off+q*m+k] = 1.0
		hdata[off+k*m+q] = 1.0
	}

	cdata := make([]float64, nvar)
	for k := 0; k < q; k++ {
		cdata[p+k] = 1.0
	}

	dims := sets.NewDimensionSet("l", "q", "s")
	dims.Set("l", []int{nl})
	dims.Set("q", []int{})
	sdims := make([]int, q)
	for k := range sdims {
		sdims[k] = m
	}
	dims.Set("s", sdims)

	return &Design{
		kind: KindA,
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
