// This file is part of optdesign package. It is free software, distributed
// under the terms of GNU Lesser General Public License Version 3, or any later
// version. See the COPYING tile included in this archive.

package design

import "fmt"

// DimensionMismatchError reports inconsistent problem data (vector set
// dimensions or allocation parameters). It is raised before any solver
// call.
type DimensionMismatchError struct {
	Field  string
	Detail string
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("design: %s: %s", e.Field, e.Detail)
}
