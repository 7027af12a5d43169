// Package ice models internal-compiler-error conditions: invariant violations
// that indicate a bug in an earlier pass rather than a user-facing C error.
package ice

import "fmt"

// Error is raised for internal invariant violations (missing classification,
// undefined label, type/category mismatch in the IR). It is never expected
// to surface to an end user.
type Error struct {
	msg string
}

func (e *Error) Error() string { return "internal compiler error: " + e.msg }

// Raise panics with a *Error built from a format string, mirroring the
// source's RAISE_INTERNAL_ERROR macro.
func Raise(format string, args ...any) {
	panic(&Error{msg: fmt.Sprintf(format, args...)})
}

// Recover reports whether r (the value from recover()) is an *Error, and if
// so returns it. Any other panic value is re-panicked by the caller.
func Recover(r any) (*Error, bool) {
	e, ok := r.(*Error)
	return e, ok
}
