package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors - these represent local rule violations
var (
	// Session
	ErrAccessDenied  = errors.New("access denied for this session")
	ErrForbidden     = errors.New("action forbidden")
	ErrUserNotLoaded = errors.New("user identity has not been received")

	// Tickets and notes
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrNoTicketSelected  = errors.New("no ticket selected")
	ErrEmptyNote         = errors.New("note needs content or an attachment")
	ErrInvalidStatus     = errors.New("invalid ticket status")
	ErrInvalidPriority   = errors.New("invalid ticket priority")
	ErrInvalidTicketType = errors.New("invalid ticket type")
	ErrInvalidModal      = errors.New("invalid modal")
	ErrFieldType         = errors.New("value has the wrong type for field")
	ErrUnknownField      = errors.New("unknown ticket field")

	// Host channel
	ErrMalformedEnvelope    = errors.New("malformed envelope")
	ErrHostNotConnected     = errors.New("host is not connected")
	ErrHostAlreadyConnected = errors.New("a host is already connected")
	ErrOutboundQueueFull    = errors.New("outbound queue is full")
	ErrGatewayStopped       = errors.New("gateway is not running")

	// Generic
	ErrNotFound    = errors.New("resource not found")
	ErrInternal    = errors.New("internal server error")
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

func NewNotFoundError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "NOT_FOUND",
		StatusCode: 404,
	}
}

func NewRateLimitError() *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		Message:    "Too many requests. Please try again later.",
		Code:       "RATE_LIMITED",
		StatusCode: 429,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}

// ValidationErrors holds multiple field validation errors
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make(map[string][]string),
	}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Has reports whether field has at least one error.
func (v *ValidationErrors) Has(field string) bool {
	return len(v.Errors[field]) > 0
}

// Fields returns the invalid field names in sorted order.
func (v *ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(v.Fields(), ", "))
}
