// Package apperr defines the typed failures raised by the validation,
// service and repository layers. Each error carries a Kind so the
// presentation layer can map it to an HTTP status or console message in
// exactly one place.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application failure.
type Kind int

const (
	Unknown Kind = iota
	NotFound
	Duplicate
	Validation
	BusinessRule
)

// Code returns a stable machine-readable identifier for the kind.
func (k Kind) Code() string {
	switch k {
	case NotFound:
		return "NOT_FOUND"
	case Duplicate:
		return "DUPLICATE"
	case Validation:
		return "VALIDATION_ERROR"
	case BusinessRule:
		return "BUSINESS_RULE_VIOLATION"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is a typed application failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return newf(NotFound, format, args...)
}

func Duplicatef(format string, args ...any) *Error {
	return newf(Duplicate, format, args...)
}

func Validationf(format string, args ...any) *Error {
	return newf(Validation, format, args...)
}

func BusinessRulef(format string, args ...any) *Error {
	return newf(BusinessRule, format, args...)
}

// KindOf unwraps err and returns its Kind, or Unknown for errors that did
// not originate from this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
