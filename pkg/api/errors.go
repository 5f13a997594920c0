package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies where a request failed
type ErrorKind string

const (
	// KindTransport covers connection, DNS and timeout failures
	KindTransport ErrorKind = "transport"
	// KindStatus covers non-2xx responses
	KindStatus ErrorKind = "status"
	// KindDecode covers response bodies that are not the expected JSON
	KindDecode ErrorKind = "decode"
	// KindEncode covers request bodies that could not be built
	KindEncode ErrorKind = "encode"
)

// Error is returned by every Client operation that fails
type Error struct {
	Kind   ErrorKind
	Op     string
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("%s failed: %d %s: %s", e.Op, e.Status, http.StatusText(e.Status), e.Body)
		}
		return fmt.Sprintf("%s failed: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	case KindDecode:
		return fmt.Sprintf("%s failed: invalid response: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of a KindStatus error, or 0
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindStatus {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
