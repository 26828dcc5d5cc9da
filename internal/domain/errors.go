package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrValidation      = errors.New("validation error")
	ErrMalformedInput  = errors.New("malformed input")
	ErrDuplicateTarget = errors.New("duplicate target")
	ErrNoCandidate     = errors.New("no candidate")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// MalformedInputError reports a required column absent from an input table.
// It is fatal: the run aborts before matching starts.
type MalformedInputError struct {
	Table  string
	Column string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: table %s: missing required column %q", e.Table, e.Column)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// DuplicateTargetError reports a stimulus word listed more than once with
// conflicting grammatical classes.
type DuplicateTargetError struct {
	Word    string
	Classes []GrammaticalClass
}

func (e *DuplicateTargetError) Error() string {
	classes := make([]string, len(e.Classes))
	for i, c := range e.Classes {
		classes[i] = string(c)
	}
	return fmt.Sprintf("duplicate target %q with conflicting classes [%s]", e.Word, strings.Join(classes, ", "))
}

func (e *DuplicateTargetError) Unwrap() error { return ErrDuplicateTarget }

// NoCandidateError is recorded on a MatchResult whose target had no
// eligible filler. It never aborts a run.
type NoCandidateError struct {
	Word   string
	Reason string
}

func (e *NoCandidateError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("no candidate for %q", e.Word)
	}
	return fmt.Sprintf("no candidate for %q: %s", e.Word, e.Reason)
}

func (e *NoCandidateError) Unwrap() error { return ErrNoCandidate }
