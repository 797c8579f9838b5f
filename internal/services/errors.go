package services

import (
	"errors"
	"sort"
	"strings"
	"yatube/internal/storage"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = storage.ErrNotFound
	ErrForbidden      = errors.New("forbidden")
)

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// ValidationError carries field-level messages for re-rendering a form.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: FieldErrors{field: message}}
}

// Fields extracts field messages from err, or nil when err is not a
// validation failure.
func Fields(err error) FieldErrors {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
