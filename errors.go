package gridbase

import (
	"errors"

	"github.com/gridbase/client-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingAccessToken is returned when neither an access token nor a
	// token source is provided.
	ErrMissingAccessToken = errors.New("access token is required")

	// ErrInvalidRequest matches 400, 405 and 500 responses.
	ErrInvalidRequest = apierrors.ErrInvalidRequest

	// ErrNotAuthorized matches 401 responses.
	ErrNotAuthorized = apierrors.ErrNotAuthorized

	// ErrForbidden matches 403 responses.
	ErrForbidden = apierrors.ErrForbidden

	// ErrNotFound matches 404 responses and empty-path rejections.
	ErrNotFound = apierrors.ErrNotFound

	// ErrServiceUnavailable matches 503 responses, including when the retry
	// budget ran out while the service stayed rate limited.
	ErrServiceUnavailable = apierrors.ErrServiceUnavailable
)

// Kind classifies an API failure by the status code that produced it.
type Kind = apierrors.Kind

// The closed set of failure kinds.
const (
	KindUnclassified        = apierrors.KindUnclassified
	KindInvalidRequest      = apierrors.KindInvalidRequest
	KindNotAuthorized       = apierrors.KindNotAuthorized
	KindForbidden           = apierrors.KindForbidden
	KindNotFound            = apierrors.KindNotFound
	KindMethodNotSupported  = apierrors.KindMethodNotSupported
	KindInternalServerError = apierrors.KindInternalServerError
	KindServiceUnavailable  = apierrors.KindServiceUnavailable
)

// APIError is a classified REST failure carrying the server's error payload
// (message, errorCode, refId, detail). Use errors.As to reach the fields and
// errors.Is with the sentinels above to branch on the kind.
type APIError = apierrors.Error

// SerializationError is a local encode or decode failure. It is always
// surfaced; malformed server data never turns into an empty result.
type SerializationError = apierrors.SerializationError

// TransportError wraps a connection-level failure from the HTTP client.
// The SDK never retries these.
type TransportError = apierrors.TransportError
