package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// KindTransport covers network failures and non-2xx responses.
	KindTransport ErrorKind = iota
	// KindApplication is a 2xx response whose body carries an "error" field.
	KindApplication
	// KindDecode is a response body that is not the expected JSON.
	KindDecode
)

// String returns the lowercase name of the kind, used in log attributes.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method on failure.
type Error struct {
	Op         string // "status", "search", "area", "health"
	Kind       ErrorKind
	StatusCode int    // HTTP status, 0 when no response was received
	Message    string // server supplied message, if any
	Err        error  // underlying cause, if any
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("api %s: %s (HTTP %d): %s", e.Op, e.Kind, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("api %s: %s (HTTP %d)", e.Op, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("api %s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("api %s: %s: %s", e.Op, e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to show for err. Application errors carry
// their own message; everything else, including application errors without
// one, collapses to fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindApplication && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
