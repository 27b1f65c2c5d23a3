package errors

import (
	stderrors "errors"
	"fmt"
)

// The booking core distinguishes three recoverable error categories so the
// API layer can map them to different responses:
//
//   - ValidationError: the request itself is malformed (bad date range,
//     missing customer fields). Caller-correctable.
//   - DomainRuleError: the request is well-formed but currently illegal for
//     the entity's state (availability conflict, invalid status transition).
//   - NotFoundError: the referenced entity does not exist.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type DomainRuleError struct {
	Message string
}

func (e *DomainRuleError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NewDomainRule(format string, args ...any) error {
	return &DomainRuleError{Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return stderrors.As(err, &e)
}

func IsDomainRule(err error) bool {
	var e *DomainRuleError
	return stderrors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return stderrors.As(err, &e)
}
