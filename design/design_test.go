// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package design

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVectorSet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		vs, err := NewVectorSet(2, 3, [][]float64{{1, 0}, {0, 1}, {1, 1}})
		require.NoError(t, err)
		assert.Equal(t, 2, vs.Dim())
		assert.Equal(t, 3, vs.Len())
		assert.Equal(t, []float64{1, 1}, vs.Vector(2))
	})

	t.Run("ragged input", func(t *testing.T) {
		_, err := NewVectorSet(2, 2, [][]float64{{1, 0}, {0}})
		var dim *DimensionMismatchError
		require.ErrorAs(t, err, &dim)
		assert.Equal(t, "q", dim.Field)
	})

	t.Run("wrong count", func(t *testing.T) {
		_, err := NewVectorSet(2, 3, [][]float64{{1, 0}})
		var dim *DimensionMismatchError
		require.ErrorAs(t, err, &dim)
		assert.Equal(t, "p", dim.Field)
	})

	t.Run("degenerate dims", func(t *testing.T) {
		_, err := NewVectorSet(0, 3, nil)
		assert.Error(t, err)
	})
}

func TestRandomVectorSetDeterministic(t *testing.T) {
	a, err := RandomVectorSet(4, 8, 42)
	require.NoError(t, err)
	b, err := RandomVectorSet(4, 8, 42)
	require.NoError(t, err)
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.Vector(i), b.Vector(i))
	}
	c, err := RandomVectorSet(4, 8, 43)
	require.NoError(t, err)
	assert.NotEqual(t, a.Vector(0), c.Vector(0))
}

func TestValidateParams(t *testing.T) {
	vs, err := RandomVectorSet(3, 5, 1)
	require.NoError(t, err)

	cases := []struct {
		name  string
		par   Params
		field string
	}{
		{"zero budget", Params{Budget: 0, Cap: 1}, "budget"},
		{"negative cap", Params{Budget: 2, Cap: -1}, "cap"},
		{"cap below budget", Params{Budget: 10, Cap: 1}, "cap"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AOptimal(vs, tc.par)
			var dim *DimensionMismatchError
			require.ErrorAs(t, err, &dim)
			assert.Equal(t, tc.field, dim.Field)

			_, err = EOptimal(vs, tc.par)
			assert.True(t, errors.As(err, &dim))
			_, err = DOptimal(vs, tc.par)
			assert.True(t, errors.As(err, &dim))
		})
	}
}

func TestAOptimalShape(t *testing.T) {
	vs, err := RandomVectorSet(3, 4, 7)
	require.NoError(t, err)
	d, err := AOptimal(vs, Params{Budget: 6, Cap: 2})
	require.NoError(t, err)
	assert.Equal(t, KindA, d.Kind())

	p, q := 4, 3
	m := q + 1
	nl := 2*p + 1 + q
	rows, cols := d.cone.G.Size()
	assert.Equal(t, nl+q*m*m, rows)
	assert.Equal(t, p+q, cols)
	assert.Equal(t, nl+q*m*m, d.cone.h.NumElements())

	// Objective selects exactly the q auxiliary bounds.
	var sum float64
	for j := 0; j < p+q; j++ {
		sum += d.cone.c.GetIndex(j)
	}
	assert.InDelta(t, float64(q), sum, 1e-15)

	// h carries cap rows and the budget row.
	assert.InDelta(t, 2.0, d.cone.h.GetIndex(p), 1e-15)
	assert.InDelta(t, 6.0, d.cone.h.GetIndex(2*p), 1e-15)
}

func TestEOptimalShape(t *testing.T) {
	vs, err := RandomVectorSet(3, 4, 7)
	require.NoError(t, err)
	d, err := EOptimal(vs, Params{Budget: 6, Cap: 2})
	require.NoError(t, err)
	assert.Equal(t, KindE, d.Kind())

	p, q := 4, 3
	nl := 2*p + 1
	rows, cols := d.cone.G.Size()
	assert.Equal(t, nl+q*q, rows)
	assert.Equal(t, p+1, cols)

	// t enters every diagonal entry of the semidefinite block with +1,
	// nothing else.
	var diag, off float64
	for c := 0; c < q; c++ {
		for r := 0; r < q; r++ {
			v := d.cone.G.GetAt(nl+c*q+r, p)
			if r == c {
				diag += v
			} else {
				off += v
			}
		}
	}
	assert.InDelta(t, float64(q), diag, 1e-15)
	assert.InDelta(t, 0.0, off, 1e-15)
}

func TestDOptimalGradient(t *testing.T) {
	// Finite difference check of F1 at a strictly feasible point.
	vs, err := RandomVectorSet(3, 5, 11)
	require.NoError(t, err)
	d, err := DOptimal(vs, Params{Budget: 5, Cap: 2})
	require.NoError(t, err)

	_, x0, err := d.det.F0()
	require.NoError(t, err)

	f0, Df, err := d.det.F1(x0)
	require.NoError(t, err)

	const eps = 1e-6
	for i := 0; i < vs.Len(); i++ {
		xi := x0.Copy()
		xi.SetIndex(i, xi.GetIndex(i)+eps)
		fi, _, err := d.det.F1(xi)
		require.NoError(t, err)
		fd := (fi.GetIndex(0) - f0.GetIndex(0)) / eps
		assert.InDelta(t, Df.GetIndex(i), fd, 1e-3, "gradient entry %d", i)
	}
}
