// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

// Package design formulates A-, E- and D-optimal experiment design
// problems over a set of candidate direction vectors and solves them with
// the cvx cone solvers. The A and E scalarizations lower to semidefinite
// cone LPs (cvx.ConeLp); the D scalarization is the nonlinear convex
// program maximize log det Σ λ_i v_i v_i' solved with cvx.Cp.
package design

import (
	"math/rand"

	"github.com/hrautila/matrix"
)

// VectorSet holds p candidate experiment vectors in R^q. The set is fixed
// once created; formulators only read it.
type VectorSet struct {
	q, p int
	vecs [][]float64
}

// NewVectorSet builds a set from p column vectors of length q. Dimensions
// are checked up front; a ragged or empty input fails with
// DimensionMismatchError before any solver is involved.
func NewVectorSet(q, p int, cols [][]float64) (*VectorSet, error) {
	if q < 1 || p < 1 {
		return nil, &DimensionMismatchError{Field: "q/p", Detail: "dimensions must be at least 1"}
	}
	if len(cols) != p {
		return nil, &DimensionMismatchError{Field: "p", Detail: "number of vectors does not match p"}
	}
	vecs := make([][]float64, p)
	for i, col := range cols {
		if len(col) != q {
			return nil, &DimensionMismatchError{Field: "q", Detail: "vector length does not match q"}
		}
		vecs[i] = append([]float64(nil), col...)
	}
	return &VectorSet{q: q, p: p, vecs: vecs}, nil
}

// RandomVectorSet draws p standard normal vectors of length q from a
// deterministic source, so a fixed seed reproduces the same set.
func RandomVectorSet(q, p int, seed int64) (*VectorSet, error) {
	if q < 1 || p < 1 {
		return nil, &DimensionMismatchError{Field: "q/p", Detail: "dimensions must be at least 1"}
	}
	rnd := rand.New(rand.NewSource(seed))
	vecs := make([][]float64, p)
	for i := range vecs {
		col := make([]float64, q)
		for k := range col {
			col[k] = rnd.NormFloat64()
		}
		vecs[i] = col
	}
	return &VectorSet{q: q, p: p, vecs: vecs}, nil
}

// Dim returns the vector length q.
func (vs *VectorSet) Dim() int { return vs.q }

// Len returns the number of candidate vectors p.
func (vs *VectorSet) Len() int { return vs.p }

// Vector returns a copy of candidate i.
func (vs *VectorSet) Vector(i int) []float64 {
	return append([]float64(nil), vs.vecs[i]...)
}

// Matrix returns the q by p matrix whose column i is candidate i.
func (vs *VectorSet) Matrix() *matrix.FloatMatrix {
	return matrix.FloatMatrixFromTable(vs.vecs, matrix.ColumnOrder)
}

// information returns M(λ) = Σ λ_i v_i v_i' as column slices.
func (vs *VectorSet) information(lambda []float64) [][]float64 {
	m := make([][]float64, vs.q)
	for c := range m {
		m[c] = make([]float64, vs.q)
	}
	for i, v := range vs.vecs {
		w := lambda[i]
		for c := 0; c < vs.q; c++ {
			vc := w * v[c]
			for r := 0; r < vs.q; r++ {
				m[c][r] += vc * v[r]
			}
		}
	}
	return m
}
