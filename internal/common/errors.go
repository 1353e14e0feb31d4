package common

import (
	"errors"
	"fmt"

	"github.com/scandocs/pipeline/constants"
)

// AppError is an application error with a stable taxonomy kind.
type AppError struct {
	Kind    constants.ErrorKind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError builds a taxonomy error with an optional wrapped cause.
func NewAppError(kind constants.ErrorKind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the taxonomy kind from err, or "" if err carries none.
func KindOf(err error) constants.ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsKind reports whether err carries the given taxonomy kind.
func IsKind(err error, kind constants.ErrorKind) bool {
	return KindOf(err) == kind
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
