package catalog

import "fmt"

// ValidationError collects caller-fixable input problems keyed by field name.
// All violated fields are reported together rather than failing on the first.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ConflictError reports a uniqueness, referential or state invariant violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// RuleViolationError reports a failed borrow-lifecycle precondition.
type RuleViolationError struct {
	Message string
}

func (e *RuleViolationError) Error() string { return e.Message }

// StorageError wraps an underlying database fault. It is distinct from the
// domain error kinds and maps to an internal failure at the adapter.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
