package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// genericServiceMessage is the fallback when a failure body carries no
// recognisable message field.
const genericServiceMessage = "the service reported an error"

// NetworkError indicates a transport-level failure: the request never
// produced an HTTP response. Typical causes are DNS failures, refused
// connections, and timeouts.
type NetworkError struct {
	Op  string // "GET /api/devices/"
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("rest: network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError indicates the credential was missing or rejected (401/403).
// Callers treat this as "session expired": clear state and ask the user to
// log in again.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rest: unauthorised (status %d)", e.Status)
	}
	return fmt.Sprintf("rest: unauthorised (status %d): %s", e.Status, e.Message)
}

// ValidationError indicates the service rejected the payload with a
// field-keyed body. FieldErrors maps each rejected field to its messages so
// callers can surface them per field rather than as one blob.
type ValidationError struct {
	FieldErrors map[string][]string
	NonField    []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.FieldErrors)+1)
	if len(e.NonField) > 0 {
		parts = append(parts, strings.Join(e.NonField, ", "))
	}

	// Stable field order for error messages and tests.
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.FieldErrors[f], ", ")))
	}

	if len(parts) == 0 {
		return "rest: validation failed"
	}
	return "rest: validation failed: " + strings.Join(parts, "; ")
}

// ServiceError indicates a non-2xx response that is neither an auth
// rejection nor a field-keyed validation failure.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("rest: service error (status %d): %s", e.Status, e.Message)
}

// Message returns the service-provided message carried by any error from
// this package, falling back to the error's own text. This is what flows
// are expected to surface verbatim to the user.
func Message(err error) string {
	var (
		authErr    *AuthError
		serviceErr *ServiceError
		validErr   *ValidationError
		netErr     *NetworkError
	)
	switch {
	case errors.As(err, &authErr) && authErr.Message != "":
		return authErr.Message
	case errors.As(err, &serviceErr) && serviceErr.Message != "":
		return serviceErr.Message
	case errors.As(err, &validErr) && len(validErr.NonField) > 0:
		return strings.Join(validErr.NonField, ", ")
	case errors.As(err, &netErr):
		return "network error, check your connection"
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// errorEnvelope matches the two message shapes the service emits on failure.
type errorEnvelope struct {
	Error          string   `json:"error"`
	NonFieldErrors []string `json:"non_field_errors"`
}

// extractMessage pulls a human-readable message from a failure body.
// Precedence: the "error" field, then joined "non_field_errors", then a
// generic fallback.
func extractMessage(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		if len(env.NonFieldErrors) > 0 {
			return strings.Join(env.NonFieldErrors, ", ")
		}
	}
	return genericServiceMessage
}

// parseFieldErrors attempts to interpret a failure body as a field-keyed
// validation rejection: a JSON object whose values are arrays of strings
// (single strings are accepted and promoted to one-element lists).
// Returns nil when the body does not fit that shape.
func parseFieldErrors(body []byte) *ValidationError {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return nil
	}

	// Bodies shaped {"error": ...} or {"detail": ...} are plain messages,
	// not field-keyed rejections.
	if _, ok := raw["error"]; ok {
		return nil
	}
	if _, ok := raw["detail"]; ok {
		return nil
	}

	ve := &ValidationError{FieldErrors: make(map[string][]string)}
	for field, msg := range raw {
		var list []string
		if err := json.Unmarshal(msg, &list); err != nil {
			var single string
			if err := json.Unmarshal(msg, &single); err != nil {
				// A value that is neither a list nor a string means this is
				// not a field-keyed body.
				return nil
			}
			list = []string{single}
		}
		if field == "non_field_errors" {
			ve.NonField = list
			continue
		}
		ve.FieldErrors[field] = list
	}

	if len(ve.FieldErrors) == 0 && len(ve.NonField) == 0 {
		return nil
	}
	return ve
}
