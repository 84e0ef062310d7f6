// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package model

import "fmt"

// BoundConflictError is returned by Fix when the variable already carries a
// lower or upper bound and the call did not ask for them to be removed.
type BoundConflictError struct {
	Variable string
}

func (e *BoundConflictError) Error() string {
	return fmt.Sprintf("model: variable %q has bounds; fix requires force", e.Variable)
}

// InvalidReferenceError is returned when a handle refers to a variable or
// constraint that has been deleted from its model, or to a different model.
type InvalidReferenceError struct {
	Kind string
	Name string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("model: %s %q is not part of the model", e.Kind, e.Name)
}
