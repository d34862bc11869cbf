package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidQuery          = errors.New("invalid query")
	ErrUnsupportedOperator   = errors.New("unsupported operator")
	ErrUnknownField          = errors.New("unknown field")
	ErrInvalidSort           = errors.New("invalid sort")
	ErrInvalidFilterValue    = errors.New("invalid filter value")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateConflict      = errors.New("template already exists")
	ErrTemplateStoreReadOnly = errors.New("template store is read-only")
	ErrInvalidTemplate       = errors.New("invalid template")
	ErrDatabaseConnection    = errors.New("database connection error")
	ErrDatabaseQuery         = errors.New("database query error")
)

// ValidationError carries every message produced by Validate.
type ValidationError struct {
	Errors []string
}

func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Errors: messages}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidQuery, strings.Join(e.Errors, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuery
}

// QueryExecutionError wraps a datastore failure while running a compiled statement.
type QueryExecutionError struct {
	Err error
}

func (e *QueryExecutionError) Error() string {
	return "Query execution failed: " + e.Err.Error()
}

func (e *QueryExecutionError) Unwrap() []error {
	return []error{ErrDatabaseQuery, e.Err}
}

// TemplateNotFoundError names the missing template id.
type TemplateNotFoundError struct {
	ID string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("Template with ID %s not found", e.ID)
}

func (e *TemplateNotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}
