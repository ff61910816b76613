package loan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound             = errors.New("loan not found")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidAmount        = errors.New("payment amount must be greater than zero")
	ErrInvalidPrincipal     = errors.New("principal must be greater than zero")
	ErrInvalidTerm          = errors.New("term must be at least one month")
	ErrInvalidRate          = errors.New("interest rate must not be negative")
	ErrOutsideProductLimits = errors.New("principal outside product limits")
	ErrPendingApplication   = errors.New("member already has a pending application")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of an application.
type ValidationError struct {
	Fields []FieldError
}

// InvalidField builds a ValidationError for a single field.
func InvalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{field, msg}}}
}

func (e *ValidationError) add(field, msg string) { e.Fields = append(e.Fields, FieldError{field, msg}) }

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransitionError reports an action attempted from a status that does not allow it.
type TransitionError struct {
	From   Status
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a loan in status %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }
