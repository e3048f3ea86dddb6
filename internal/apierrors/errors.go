// Package apierrors provides the shared error taxonomy for the Gridbase client.
//
// Every failure surfaced by the SDK is one of three families: a classified
// REST error (*Error, built from the server's error payload), a local
// *SerializationError (encode/decode failure), or a *TransportError
// (connection-level failure from the HTTP client).
package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies a REST failure by the HTTP status code that produced it.
// The set is closed: any status outside the known table maps to KindUnclassified.
type Kind int

const (
	// KindUnclassified covers status codes outside the documented table.
	KindUnclassified Kind = iota
	// KindInvalidRequest is a 400 response.
	KindInvalidRequest
	// KindNotAuthorized is a 401 response.
	KindNotAuthorized
	// KindForbidden is a 403 response.
	KindForbidden
	// KindNotFound is a 404 response, or a synthetic empty-path rejection.
	KindNotFound
	// KindMethodNotSupported is a 405 response. It matches ErrInvalidRequest
	// under errors.Is, per the service's error contract.
	KindMethodNotSupported
	// KindInternalServerError is a 500 response. Like KindMethodNotSupported
	// it is reported to callers as an invalid-request failure.
	KindInternalServerError
	// KindServiceUnavailable is a 503 response. It is the only retryable kind.
	KindServiceUnavailable
)

// String returns the symbolic name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotAuthorized:
		return "not_authorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindMethodNotSupported:
		return "method_not_supported"
	case KindInternalServerError:
		return "internal_server_error"
	case KindServiceUnavailable:
		return "service_unavailable"
	default:
		return "unclassified"
	}
}

// Classify maps an HTTP status code to its Kind. It is total and never fails.
func Classify(status int) Kind {
	switch status {
	case 400:
		return KindInvalidRequest
	case 401:
		return KindNotAuthorized
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	case 405:
		return KindMethodNotSupported
	case 500:
		return KindInternalServerError
	case 503:
		return KindServiceUnavailable
	default:
		return KindUnclassified
	}
}

// Sentinel errors for errors.Is() checks.
var (
	// ErrInvalidRequest matches 400, 405 and 500 responses.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotAuthorized matches 401 responses; the access token is invalid or expired.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrForbidden matches 403 responses; the token lacks access to the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound matches 404 responses and empty-path rejections.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable matches 503 responses, including the case where
	// the retry budget was exhausted while the service stayed rate limited.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ErrorPayload is the error body shape the service returns on any non-200
// status: {"message": ..., "errorCode": ..., "refId": ..., "detail": ...}.
type ErrorPayload struct {
	Message   string          `json:"message"`
	ErrorCode int             `json:"errorCode,omitempty"`
	RefID     string          `json:"refId,omitempty"`
	Detail    json.RawMessage `json:"detail,omitempty"`
}

// Error is a classified REST failure carrying the server's error payload.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	ErrorCode  int
	RefID      string
	Detail     json.RawMessage
}

// New builds an *Error from a classification and the parsed payload.
// A partially or fully empty payload is fine; missing fields stay zero.
func New(kind Kind, status int, payload ErrorPayload) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: status,
		Message:    payload.Message,
		ErrorCode:  payload.ErrorCode,
		RefID:      payload.RefID,
		Detail:     payload.Detail,
	}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.RefID != "" {
		return fmt.Sprintf("API error %d: %s (errorCode: %d, refId: %s)", e.StatusCode, msg, e.ErrorCode, e.RefID)
	}
	if e.ErrorCode != 0 {
		return fmt.Sprintf("API error %d: %s (errorCode: %d)", e.StatusCode, msg, e.ErrorCode)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, msg)
}

// Is implements errors.Is for sentinel error matching. 405 and 500 responses
// match ErrInvalidRequest: the service reports both as generic client-facing
// request failures.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidRequest, KindMethodNotSupported, KindInternalServerError:
		return target == ErrInvalidRequest
	case KindNotAuthorized:
		return target == ErrNotAuthorized
	case KindForbidden:
		return target == ErrForbidden
	case KindNotFound:
		return target == ErrNotFound
	case KindServiceUnavailable:
		return target == ErrServiceUnavailable
	}
	return false
}

// Retryable reports whether the failure may be retried. Only
// service-unavailable responses qualify.
func (e *Error) Retryable() bool {
	return e.Kind == KindServiceUnavailable
}

// SerializationError is a local encode or decode failure: malformed JSON,
// an unsupported value, or a shape mismatch. It is always surfaced, never
// silently defaulted.
type SerializationError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error (%s): %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// TransportError wraps a connection-level failure from the underlying HTTP
// client. Transport failures are never retried by the request layer.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}
