package services

import "fmt"

// ValidationError reports caller-fixable input problems: malformed values,
// wrong entity types, references outside the team. Detected before any
// mutation; an operation that returns one has written nothing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing referenced entity. A row that exists but
// belongs to another team is reported identically, so callers cannot probe
// for cross-tenant existence.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError reports a state conflict: applying a template onto a block
// that already has a lineup, or exceeding the per-block lineup cap.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
