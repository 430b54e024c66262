package httptool

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed HTTP transaction so callers can tell a
// timeout from a connection failure from an error status programmatically.
type ErrorKind int

const (
	// KindOther covers transport failures not matched by a more specific kind.
	KindOther ErrorKind = iota
	// KindTimeout means the transaction did not complete within the request timeout.
	KindTimeout
	// KindConnection means a connection to the host could not be established.
	KindConnection
	// KindHTTPStatus means the server responded with a 4xx or 5xx status.
	KindHTTPStatus
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindHTTPStatus:
		return "http_status"
	default:
		return "other"
	}
}

// Error is a classified request failure. Status is only set for KindHTTPStatus.
type Error struct {
	Kind    ErrorKind
	URL     string
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func timeoutError(url string, seconds int) *Error {
	return &Error{
		Kind:    KindTimeout,
		URL:     url,
		Message: fmt.Sprintf("Request to %s timed out after %d seconds", url, seconds),
	}
}

func connectionError(url string) *Error {
	return &Error{
		Kind:    KindConnection,
		URL:     url,
		Message: fmt.Sprintf("Failed to connect to %s", url),
	}
}

func statusError(url string, status int) *Error {
	return &Error{
		Kind:    KindHTTPStatus,
		URL:     url,
		Status:  status,
		Message: fmt.Sprintf("HTTP error %d: %s for url %s", status, http.StatusText(status), url),
	}
}

func otherError(url string, err error) *Error {
	return &Error{
		Kind:    KindOther,
		URL:     url,
		Message: fmt.Sprintf("Request failed: %v", err),
	}
}
