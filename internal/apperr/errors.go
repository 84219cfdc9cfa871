// Package apperr holds the error taxonomy shared by the repository, service
// and HTTP layers. Errors are raised at the point of detection, wrapped with
// field or entity context and matched with errors.Is at the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStorage      = errors.New("storage failure")
)

// Invalidf wraps ErrInvalidInput with a field-level detail message.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound naming the missing entity and id.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Storage wraps an underlying store error. The raw error stays in the chain
// for logging but is never shown to clients.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
