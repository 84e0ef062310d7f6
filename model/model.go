// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

// Package model implements a small mutable optimization model: scalar
// variables with bound state, linear constraints and a linear objective.
// A Model is an explicit context object; every operation goes through it
// and handles from one model are rejected by another. Models lower to the
// cvx LP solver, see Solve.
package model

import "fmt"

// BoundState records which bounds a variable currently carries. Fixed
// excludes the other states: fixing removes existing bounds (with force)
// and setting a bound on a fixed variable is rejected.
type BoundState int

const (
	Unbounded BoundState = iota
	LowerOnly
	UpperOnly
	Bounded
	Fixed
)

func (s BoundState) String() string {
	switch s {
	case Unbounded:
		return "unbounded"
	case LowerOnly:
		return "lower"
	case UpperOnly:
		return "upper"
	case Bounded:
		return "bounded"
	}
	return "fixed"
}

type variable struct {
	name   string
	state  BoundState
	lower  float64
	upper  float64
	fixval float64
	alive  bool
}

// Model holds variables, constraints and the objective. The zero value is
// not usable; create models with New.
type Model struct {
	vars     []variable
	cons     []constraint
	sense    Sense
	objCoef  map[int]float64
	objConst float64
}

// New returns an empty model with a Minimize objective of zero.
func New() *Model {
	return &Model{sense: Minimize}
}

// Variable is a handle into one model. Handles stay valid until the
// variable is deleted; afterwards IsValid reports false and every other
// operation returns InvalidReferenceError.
type Variable struct {
	m  *Model
	id int
}

// AddVariable appends a new unbounded variable.
func (m *Model) AddVariable(name string) Variable {
	if len(name) == 0 {
		name = fmt.Sprintf("x%d", len(m.vars))
	}
	m.vars = append(m.vars, variable{name: name, alive: true})
	return Variable{m: m, id: len(m.vars) - 1}
}

// Variables enumerates the live variables in creation order. Deleted
// variables do not appear.
func (m *Model) Variables() []Variable {
	vs := make([]Variable, 0, len(m.vars))
	for id := range m.vars {
		if m.vars[id].alive {
			vs = append(vs, Variable{m: m, id: id})
		}
	}
	return vs
}

// NumVariables counts the live variables.
func (m *Model) NumVariables() int {
	return len(m.Variables())
}

// IsValid reports whether v is a live variable of this model.
func (m *Model) IsValid(v Variable) bool {
	return v.m == m && v.id >= 0 && v.id < len(m.vars) && m.vars[v.id].alive
}

// Delete removes a variable from the model. The variable's coefficients are
// dropped from every constraint and from the objective. Subsequent use of
// the handle fails with InvalidReferenceError.
func (m *Model) Delete(v Variable) error {
	vr, err := m.variable(v)
	if err != nil {
		return err
	}
	vr.alive = false
	for i := range m.cons {
		delete(m.cons[i].coef, v.id)
	}
	delete(m.objCoef, v.id)
	return nil
}

// Name returns the variable's name, or an empty string for a dead handle.
func (m *Model) Name(v Variable) string {
	if !m.IsValid(v) {
		return ""
	}
	return m.vars[v.id].name
}

// BoundStateOf returns the variable's current bound state.
func (m *Model) BoundStateOf(v Variable) (BoundState, error) {
	vr, err := m.variable(v)
	if err != nil {
		return Unbounded, err
	}
	return vr.state, nil
}

// SetLower sets the variable's lower bound. Setting the same value twice is
// idempotent. Fixed variables cannot be bounded; unfix first.
func (m *Model) SetLower(v Variable, bound float64) error {
	vr, err := m.variable(v)
	if err != nil {
		return err
	}
	if vr.state == Fixed {
		return &BoundConflictError{Variable: vr.name}
	}
	vr.lower = bound
	switch vr.state {
	case Unbounded:
		vr.state = LowerOnly
	case UpperOnly:
		vr.state = Bounded
	}
	return nil
}

// SetUpper sets the variable's upper bound.
func (m *Model) SetUpper(v Variable, bound float64) error {
	vr, err := m.variable(v)
	if err != nil {
		return err
	}
	if vr.state == Fixed {
		return &BoundConflictError{Variable: vr.name}
	}
	vr.upper = bound
	switch vr.state {
	case Unbounded:
		vr.state = UpperOnly
	case LowerOnly:
		vr.state = Bounded
	}
	return nil
}

// HasLower reports whether the variable currently carries a lower bound.
func (m *Model) HasLower(v Variable) bool {
	if !m.IsValid(v) {
		return false
	}
	st := m.vars[v.id].state
	return st == LowerOnly || st == Bounded
}

// HasUpper reports whether the variable currently carries an upper bound.
func (m *Model) HasUpper(v Variable) bool {
	if !m.IsValid(v) {
		return false
	}
	st := m.vars[v.id].state
	return st == UpperOnly || st == Bounded
}

// Lower returns the lower bound and whether one is set.
func (m *Model) Lower(v Variable) (float64, bool) {
	if !m.HasLower(v) {
		return 0, false
	}
	return m.vars[v.id].lower, true
}

// Upper returns the upper bound and whether one is set.
func (m *Model) Upper(v Variable) (float64, bool) {
	if !m.HasUpper(v) {
		return 0, false
	}
	return m.vars[v.id].upper, true
}

// DeleteLower removes the lower bound.
func (m *Model) DeleteLower(v Variable) error {
	vr, err := m.variable(v)
	if err != nil {
		return err
	}
	switch vr.state {
	case LowerOnly:
		vr.state = Unbounded
	case Bounded:
		vr.state = UpperOnly
	}
	return nil
}

// DeleteUpper removes the upper bound.
func (m *Model) DeleteUpper(v Variable) error {
	vr, err := m.variable(v)
	if err != nil {
		return err
	}
	switch vr.state {
	case UpperOnly:
		vr.state = Unbounded
	case Bounded:
		vr.state = LowerOnly
	}
	return nil
}

// Fix pins the variable to a constant value. A variable carrying any bound
// cannot be fixed unless force is true, in which case the bounds are
// removed first and the fix succeeds.
func (m *Model) Fix(v Variable, value float64, force bool) error {
	vr, err := m.variable(v)
	if err != nil {
		return err
	}
	if vr.state != Unbounded && vr.state != Fixed {
		if !force {
			return &BoundConflictError{Variable: vr.name}
		}
		vr.state = Unbounded
	}
	vr.state = Fixed
	vr.fixval = value
	return nil
}

// Unfix releases a fixed variable back to the unbounded state.
func (m *Model) Unfix(v Variable) error {
	vr, err := m.variable(v)
	if err != nil {
		return err
	}
	if vr.state != Fixed {
		return fmt.Errorf("model: variable %q is not fixed", vr.name)
	}
	vr.state = Unbounded
	return nil
}

// IsFixed reports whether the variable is fixed.
func (m *Model) IsFixed(v Variable) bool {
	return m.IsValid(v) && m.vars[v.id].state == Fixed
}

// FixValue returns the fixed value and whether the variable is fixed.
func (m *Model) FixValue(v Variable) (float64, bool) {
	if !m.IsFixed(v) {
		return 0, false
	}
	return m.vars[v.id].fixval, true
}

func (m *Model) variable(v Variable) (*variable, error) {
	if !m.IsValid(v) {
		name := "?"
		if v.m == m && v.id >= 0 && v.id < len(m.vars) {
			name = m.vars[v.id].name
		}
		return nil, &InvalidReferenceError{Kind: "variable", Name: name}
	}
	return &m.vars[v.id], nil
}
