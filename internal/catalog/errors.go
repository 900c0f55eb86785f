package catalog

import "fmt"

// NotFoundError indicates that no problem exists with the given ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("problem %q not found", e.ID)
}

// ConflictError indicates a create for an ID that is already taken.
// The stored problem is left untouched.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("problem %q already exists", e.ID)
}

// UnavailableError indicates the catalog backend could not serve a query
// or persist a change. It is never converted into an empty result.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog unavailable (%s): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("catalog unavailable (%s)", e.Op)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// InvalidProblemError describes a problem that fails field validation.
type InvalidProblemError struct {
	Field   string
	Message string
}

func (e *InvalidProblemError) Error() string {
	return fmt.Sprintf("invalid problem: %s %s", e.Field, e.Message)
}
