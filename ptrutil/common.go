// Package ptrutil provides pointer focused utility functions.
package ptrutil

// ToPtr returns a pointer to a copy of the provided value.
//
// NOTE: This is mainly useful for acquiring a pointer to a constant or the result of a function call, for variables
// the & operator does the job without the copy.
func ToPtr[V any](v V) *V {
	return &v
}

// SetPtrIfNil sets the pointer pointed to by p to otherP if it is currently nil.
//
// NOTE: This replaces the three line
//
//	if x == nil {
//	    x = y
//	}
//
// construction when filling defaulted fields, see envvar.GetHTTPTimeouts for example usage.
func SetPtrIfNil[V any](p **V, otherP *V) {
	if p == nil || *p != nil {
		return
	}

	*p = otherP
}
