// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package design

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/coneopt/optdesign/solver"
)

const (
	scenQ      = 4
	scenP      = 8
	scenBudget = 12.0
	scenCap    = 3.0
	scenSeed   = 99
)

// symInformation rebuilds M(λ) as a gonum matrix for independent checks.
func symInformation(vs *VectorSet, lambda []float64) *mat.SymDense {
	q := vs.Dim()
	s := mat.NewSymDense(q, nil)
	for i := 0; i < vs.Len(); i++ {
		v := vs.Vector(i)
		for r := 0; r < q; r++ {
			for c := r; c < q; c++ {
				s.SetSym(r, c, s.At(r, c)+lambda[i]*v[r]*v[c])
			}
		}
	}
	return s
}

func checkAllocation(t *testing.T, alloc []float64) {
	t.Helper()
	require.Len(t, alloc, scenP)
	var sum float64
	for i, l := range alloc {
		assert.GreaterOrEqual(t, l, -1e-6, "allocation %d below zero", i)
		assert.LessOrEqual(t, l, scenCap+1e-6, "allocation %d above cap", i)
		sum += l
	}
	assert.LessOrEqual(t, sum, scenBudget+1e-5)
}

func scenarioSet(t *testing.T) *VectorSet {
	t.Helper()
	vs, err := RandomVectorSet(scenQ, scenP, scenSeed)
	require.NoError(t, err)
	return vs
}

func TestAOptimalScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping delegated solve")
	}
	vs := scenarioSet(t)
	d, err := AOptimal(vs, Params{Budget: scenBudget, Cap: scenCap})
	require.NoError(t, err)
	res, err := d.Solve(solver.Options{})
	require.NoError(t, err)

	checkAllocation(t, res.Allocation)
	assert.Greater(t, res.Objective, 0.0)

	// The objective bounds tr(M^-1) from above.
	var ch mat.Cholesky
	require.True(t, ch.Factorize(symInformation(vs, res.Allocation)))
	var inv mat.SymDense
	require.NoError(t, ch.InverseTo(&inv))
	var tr float64
	for k := 0; k < scenQ; k++ {
		tr += inv.At(k, k)
	}
	assert.InDelta(t, tr, res.Objective, 1e-4)
}

func TestEOptimalScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping delegated solve")
	}
	vs := scenarioSet(t)
	d, err := EOptimal(vs, Params{Budget: scenBudget, Cap: scenCap})
	require.NoError(t, err)
	res, err := d.Solve(solver.Options{})
	require.NoError(t, err)

	checkAllocation(t, res.Allocation)

	// t equals the smallest eigenvalue of M at the optimum and cannot
	// beat the full allocation λ = cap everywhere.
	full := make([]float64, scenP)
	for i := range full {
		full[i] = scenCap
	}
	var es mat.EigenSym
	require.True(t, es.Factorize(symInformation(vs, full), false))
	assert.LessOrEqual(t, res.Objective, es.Values(nil)[0]+1e-5)

	require.True(t, es.Factorize(symInformation(vs, res.Allocation), false))
	assert.InDelta(t, es.Values(nil)[0], res.Objective, 1e-4)
}

func TestDOptimalScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping delegated solve")
	}
	vs := scenarioSet(t)
	d, err := DOptimal(vs, Params{Budget: scenBudget, Cap: scenCap})
	require.NoError(t, err)
	res, err := d.Solve(solver.Options{})
	require.NoError(t, err)

	checkAllocation(t, res.Allocation)

	// Reported objective is log det M(λ*) exactly.
	var ch mat.Cholesky
	require.True(t, ch.Factorize(symInformation(vs, res.Allocation)))
	assert.InDelta(t, ch.LogDet(), res.Objective, 1e-6)

	// D-optimal dominates every other allocation's determinant; the
	// E-optimal allocation is a handy competitor.
	e, err := EOptimal(vs, Params{Budget: scenBudget, Cap: scenCap})
	require.NoError(t, err)
	eres, err := e.Solve(solver.Options{})
	require.NoError(t, err)
	require.True(t, ch.Factorize(symInformation(vs, eres.Allocation)))
	assert.GreaterOrEqual(t, res.Objective+1e-5, ch.LogDet())

	if math.IsNaN(res.Objective) {
		t.Fatal("objective is NaN")
	}
}
