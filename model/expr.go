// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package model

import "fmt"

// Sense is the optimization direction of the objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Relation orders a constraint's linear expression against its right hand
// side.
type Relation int

const (
	LessEqual Relation = iota
	GreaterEqual
	Equal
)

func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	}
	return "=="
}

// Term is one coefficient-variable product of a linear expression.
type Term struct {
	Var  Variable
	Coef float64
}

// LinExpr is a linear expression Σ coef_j x_j + constant. Expressions are
// values; installing one into a model copies it.
type LinExpr struct {
	Terms    []Term
	Constant float64
}

// Plus appends a term and returns the extended expression.
func (e LinExpr) Plus(v Variable, coef float64) LinExpr {
	e.Terms = append(e.Terms, Term{Var: v, Coef: coef})
	return e
}

type constraint struct {
	name  string
	coef  map[int]float64
	rel   Relation
	rhs   float64
	alive bool
}

// Constraint is a handle to one linear constraint of a model.
type Constraint struct {
	m  *Model
	id int
}

// collapse validates an expression against m and folds duplicate terms.
func (m *Model) collapse(e LinExpr) (map[int]float64, error) {
	coef := make(map[int]float64, len(e.Terms))
	for _, t := range e.Terms {
		if !m.IsValid(t.Var) {
			return nil, &InvalidReferenceError{Kind: "variable", Name: m.Name(t.Var)}
		}
		coef[t.Var.id] += t.Coef
	}
	return coef, nil
}

// AddConstraint installs the linear constraint "expr rel rhs". The
// expression's constant is folded into the right hand side.
func (m *Model) AddConstraint(name string, expr LinExpr, rel Relation, rhs float64) (Constraint, error) {
	coef, err := m.collapse(expr)
	if err != nil {
		return Constraint{}, err
	}
	if len(name) == 0 {
		name = fmt.Sprintf("c%d", len(m.cons))
	}
	m.cons = append(m.cons, constraint{
		name:  name,
		coef:  coef,
		rel:   rel,
		rhs:   rhs - expr.Constant,
		alive: true,
	})
	return Constraint{m: m, id: len(m.cons) - 1}, nil
}

// Constraints enumerates the live constraints in creation order.
func (m *Model) Constraints() []Constraint {
	cs := make([]Constraint, 0, len(m.cons))
	for id := range m.cons {
		if m.cons[id].alive {
			cs = append(cs, Constraint{m: m, id: id})
		}
	}
	return cs
}

// IsValidConstraint reports whether c is a live constraint of this model.
func (m *Model) IsValidConstraint(c Constraint) bool {
	return c.m == m && c.id >= 0 && c.id < len(m.cons) && m.cons[c.id].alive
}

// DeleteConstraint removes a constraint; the handle becomes invalid.
func (m *Model) DeleteConstraint(c Constraint) error {
	cr, err := m.constraint(c)
	if err != nil {
		return err
	}
	cr.alive = false
	return nil
}

// ConstraintName returns the constraint's name, or "" for a dead handle.
func (m *Model) ConstraintName(c Constraint) string {
	if !m.IsValidConstraint(c) {
		return ""
	}
	return m.cons[c.id].name
}

// SetCoefficient changes the single coefficient of v inside c. A zero
// coefficient removes the term.
func (m *Model) SetCoefficient(c Constraint, v Variable, coef float64) error {
	cr, err := m.constraint(c)
	if err != nil {
		return err
	}
	if !m.IsValid(v) {
		return &InvalidReferenceError{Kind: "variable", Name: m.Name(v)}
	}
	if coef == 0 {
		delete(cr.coef, v.id)
		return nil
	}
	cr.coef[v.id] = coef
	return nil
}

// Coefficient returns the coefficient of v inside c; absent terms are zero.
func (m *Model) Coefficient(c Constraint, v Variable) (float64, error) {
	cr, err := m.constraint(c)
	if err != nil {
		return 0, err
	}
	if !m.IsValid(v) {
		return 0, &InvalidReferenceError{Kind: "variable", Name: m.Name(v)}
	}
	return cr.coef[v.id], nil
}

// SetObjective replaces the whole objective: the previous expression and
// sense are discarded, nothing is merged.
func (m *Model) SetObjective(sense Sense, expr LinExpr) error {
	coef, err := m.collapse(expr)
	if err != nil {
		return err
	}
	m.sense = sense
	m.objCoef = coef
	m.objConst = expr.Constant
	return nil
}

// SetObjectiveCoefficient changes one variable's objective coefficient in
// place, leaving the rest of the objective untouched.
func (m *Model) SetObjectiveCoefficient(v Variable, coef float64) error {
	if !m.IsValid(v) {
		return &InvalidReferenceError{Kind: "variable", Name: m.Name(v)}
	}
	if m.objCoef == nil {
		m.objCoef = make(map[int]float64)
	}
	if coef == 0 {
		delete(m.objCoef, v.id)
		return nil
	}
	m.objCoef[v.id] = coef
	return nil
}

// Objective returns the current sense and a copy of the objective
// expression, with terms in variable creation order.
func (m *Model) Objective() (Sense, LinExpr) {
	expr := LinExpr{Constant: m.objConst}
	for id := range m.vars {
		if !m.vars[id].alive {
			continue
		}
		if coef, ok := m.objCoef[id]; ok {
			expr.Terms = append(expr.Terms, Term{Var: Variable{m: m, id: id}, Coef: coef})
		}
	}
	return m.sense, expr
}

func (m *Model) constraint(c Constraint) (*constraint, error) {
	if !m.IsValidConstraint(c) {
		name := "?"
		if c.m == m && c.id >= 0 && c.id < len(m.cons) {
			name = m.cons[c.id].name
		}
		return nil, &InvalidReferenceError{Kind: "constraint", Name: name}
	}
	return &m.cons[c.id], nil
}
