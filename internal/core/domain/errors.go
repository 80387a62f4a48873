package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated is returned when the backend rejects the session token (HTTP 401).
	ErrUnauthenticated = errors.New("session expired or missing")
	// ErrForbidden is returned when the backend denies access to a resource (HTTP 403).
	ErrForbidden = errors.New("access forbidden")
	// ErrBackendUnavailable covers transport failures, unexpected statuses and undecodable bodies.
	ErrBackendUnavailable = errors.New("backend communication failure")
	// ErrStaleResponse marks a list response superseded by a newer request.
	ErrStaleResponse = errors.New("response superseded by a newer request")

	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidPrintCode     = errors.New("print code must have exactly 5 characters")
	ErrLayoutNotConfigured  = errors.New("print layout not configured")
	ErrIncompleteLayout     = errors.New("print layout has unplaced positions")
	ErrInvalidPositionCount = errors.New("position count must be between 1 and 8")
	ErrInvalidPosition      = errors.New("position index out of range")
	ErrMissingDownloadLink  = errors.New("download link not found in response")
)

// LogicalError is a backend response with success=false. The message is the
// backend's errorMessage and is safe to show to the operator.
type LogicalError struct {
	Endpoint string
	Message  string
}

func (e *LogicalError) Error() string {
	if e.Message == "" {
		return e.Endpoint + ": request rejected by backend"
	}
	return e.Message
}

// ValidationError carries per-field messages from client-side validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// IsLogical reports whether err is a backend logical failure and returns it.
func IsLogical(err error) (*LogicalError, bool) {
	var le *LogicalError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
