package fedi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the normalized classification of a failed API request.
type ErrorKind string

const (
	// ErrorKindUnauthorized indicates a missing or rejected credential (401).
	ErrorKindUnauthorized ErrorKind = "unauthorized"

	// ErrorKindNotFound indicates the requested resource does not exist (404).
	ErrorKindNotFound ErrorKind = "not_found"

	// ErrorKindRateLimited indicates server-imposed throttling (429). The
	// client surfaces it as-is; backoff policy is left to the caller.
	ErrorKindRateLimited ErrorKind = "rate_limited"

	// ErrorKindGeneric covers every other failure, including network-level
	// errors that never produced a status code.
	ErrorKindGeneric ErrorKind = "generic"
)

// FallbackErrorMessage is used when the response body carries no error field.
const FallbackErrorMessage = "request failed"

// APIError represents a classified error from a Mastodon-compatible API.
type APIError struct {
	Kind       ErrorKind `json:"kind"        yaml:"kind"`
	StatusCode int       `json:"status_code" yaml:"status_code"`
	Message    string    `json:"message"     yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.Kind, e.Message, e.StatusCode)
}

// errorBody is the structured error shape servers return alongside a
// non-2xx status.
type errorBody struct {
	Error string `json:"error"`
}

// ClassifyResponse maps a failed request's status and body to exactly one
// APIError. The mapping is total: every input produces a classified error.
// A zero status means the request never completed (network failure).
func ClassifyResponse(statusCode int, body []byte) *APIError {
	var kind ErrorKind

	switch statusCode {
	case http.StatusUnauthorized:
		kind = ErrorKindUnauthorized
	case http.StatusNotFound:
		kind = ErrorKindNotFound
	case http.StatusTooManyRequests:
		kind = ErrorKindRateLimited
	default:
		kind = ErrorKindGeneric
	}

	message := FallbackErrorMessage

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		message = parsed.Error
	}

	return &APIError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ClassifyNetworkError wraps a transport-level failure that produced no
// HTTP status at all.
func ClassifyNetworkError(err error) *APIError {
	message := FallbackErrorMessage
	if err != nil {
		message = err.Error()
	}

	return &APIError{
		Kind:    ErrorKindGeneric,
		Message: message,
	}
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == ErrorKindNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == ErrorKindUnauthorized
	}

	return false
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == ErrorKindRateLimited
	}

	return false
}

// Common static errors that can be wrapped with context.
var (
	ErrNoMorePages            = errors.New("no more pages")
	ErrConfigRequired         = errors.New("config is required")
	ErrServerRequired         = errors.New("server URL is required")
	ErrSessionClosed          = errors.New("stream session is closed")
	ErrSessionAlreadyStarted  = errors.New("stream session already connected")
	ErrNoHostInURL            = errors.New("no host specified in URL")
	ErrStaticTokenNoRefresh   = errors.New("static token cannot be refreshed")
	ErrNoTokenConfigured      = errors.New("no access token configured")
	ErrAttachmentTooLarge     = errors.New("attachment exceeds size limit")
	ErrUnknownConfigKey       = errors.New("unknown configuration key")
	ErrInvalidStreamName      = errors.New("invalid stream name")
	ErrAccountNotFound        = errors.New("account not found")
	ErrUnsupportedOutput      = errors.New("unsupported output format")
	ErrMissingStatusText      = errors.New("status text is required")
	ErrNoInstanceConfigured   = errors.New("no instance configured")
	ErrCacheKeyNotFound       = errors.New("key not found")
	ErrCacheEntryExpired      = errors.New("entry expired")
	ErrCacheDisabled          = errors.New("cache disabled")
	ErrKeyNotFoundInAnyCache  = errors.New("key not found in any cache")
	ErrNATSConfigRequired     = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType   = errors.New("unsupported cache type")
	ErrUnsupportedStreamProto = errors.New("unsupported streaming protocol")
)
