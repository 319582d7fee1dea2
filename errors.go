package streamconv

import "fmt"

// PreconditionError reports a programming error caught by a fail-fast
// check: a violated invariant the caller must not be able to trigger by
// feeding the engine unexpected (but well-typed) data.
type PreconditionError struct {
	Component string
	Operation string
	Violation string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Component, e.Operation, e.Violation)
}

func precondition(component, operation, violation string) error {
	return &PreconditionError{Component: component, Operation: operation, Violation: violation}
}

func preconditionf(component, operation, format string, args ...any) error {
	return precondition(component, operation, fmt.Sprintf(format, args...))
}
