package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Shared error taxonomy. Callers match with errors.Is; the typed errors below
// unwrap to one of these sentinels.
var (
	// ErrUnavailable covers transport failures and 5xx answers.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is returned for 401 answers; stored credentials are
	// purged before it reaches the caller.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation marks rejected input, either by local checks or by a 4xx
	// answer carrying field errors.
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	// ErrMalformedResponse means a 2xx body did not match the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// ValidationError lists per-field messages. Message carries a form-level
// message when the server sends one.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields)+1)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}

	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add records a message for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// OrNil returns e when it holds any message, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || (e.Message == "" && len(e.Fields) == 0) {
		return nil
	}
	return e
}

// APIError is a non-2xx answer that is not a validation error.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func NewAPIError(status int, message string, kind error) *APIError {
	return &APIError{Status: status, Message: message, kind: kind}
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error: status %d", e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap exposes the sentinel the status maps to, if any.
func (e *APIError) Unwrap() error { return e.kind }
