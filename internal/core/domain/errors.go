package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when the backend rejects a login or
	// registration attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a job or application id does not exist
	// (or is not visible to the caller).
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicateApplication is returned when the applicant already applied
	// to the job. Distinct from the generic validation failure so views can
	// show a specific message.
	ErrDuplicateApplication = errors.New("already applied to this job")
	// ErrNetwork is returned when no response was received at all.
	ErrNetwork = errors.New("network failure")
)

// AuthFailureError is a login or registration rejection whose text is safe
// to show the user verbatim. Matches ErrInvalidCredentials under errors.Is.
type AuthFailureError struct {
	Msg string
}

func (e *AuthFailureError) Error() string {
	if e.Msg == "" {
		return "authentication failed, check your credentials"
	}
	return e.Msg
}

func (e *AuthFailureError) Unwrap() error { return ErrInvalidCredentials }

// ValidationError carries field-level messages when the backend returns a
// structured error map, or a single joined summary otherwise.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return strings.Join(parts, "; ")
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}
