package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	EINVALID   = "invalid"              // 400 - Validation error (bad input)
	ENOTFOUND  = "not_found"            // 404 - User, order, plant or cart item missing
	ECONFLICT  = "state_conflict"       // 400 - Illegal transition, duplicate, not awaiting payment
	ESTOCK     = "insufficient_stock"   // 400 - Not enough stock for the requested quantity
	EPAYMENT   = "payment_not_captured" // 400 - Gateway did not report a capture
	EUNAUTH    = "unauthorized"         // 401 - Webhook signature missing or rejected
	EUPSTREAM  = "upstream_gateway"     // 502 - Payment processor unreachable or rejected the call
	ETOOLARGE  = "too_large"            // 413 - Request body exceeds the configured limit
	ERATELIMIT = "rate_limited"         // 429 - Client exceeded its request budget
	EINTERNAL  = "internal"             // 500 - Internal server error (hide details)
)

// internalMessage is shown to clients in place of internal error details.
const internalMessage = "An internal error occurred. Please try again later."

// Error is an application error. Code selects the HTTP status, Message is
// safe to show to clients, Op names the failing operation for logs
// ("order.verify") and Err keeps the cause.
type Error struct {
	Code    string
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// asError returns the outermost *Error in err's chain.
func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// ErrorCode returns the code of err. Validation errors are EINVALID and
// anything unrecognised is EINTERNAL.
func ErrorCode(err error) string {
	switch e, ok := asError(err); {
	case err == nil:
		return ""
	case ok:
		return e.Code
	case IsValidationError(err):
		return EINVALID
	}
	return EINTERNAL
}

// ErrorMessage returns the client-facing message for err. Internal errors
// and unknown errors get a generic message.
func ErrorMessage(err error) string {
	switch e, ok := asError(err); {
	case err == nil:
		return ""
	case ok && e.Code != EINTERNAL:
		return e.Message
	case !ok && IsValidationError(err):
		return "Validation failed"
	}
	return internalMessage
}

// ErrorOp returns the operation recorded on err, if any.
func ErrorOp(err error) string {
	if e, ok := asError(err); ok {
		return e.Op
	}
	return ""
}

// Errorf builds an *Error with a formatted message.
func Errorf(code, op, format string, args ...any) error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches code, op and message to err. A nil err stays nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Message: message, Err: err}
}

// WithOp tags a sentinel with op. The result still matches the sentinel
// with errors.Is.
func WithOp(sentinel *Error, op string) error {
	return &Error{Code: sentinel.Code, Op: op, Message: sentinel.Message, Err: sentinel}
}

// IsCode reports whether err carries code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// ValidationError collects per-field failures for a request body.
type ValidationError struct {
	Op     string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	prefix := ""
	if e.Op != "" {
		prefix = e.Op + ": "
	}
	if len(e.Fields) != 1 {
		return fmt.Sprintf("%s%d fields failed validation", prefix, len(e.Fields))
	}
	for field, msg := range e.Fields {
		prefix += field + ": " + msg
	}
	return prefix
}

// NewValidationError reports a single bad field.
func NewValidationError(op, field, message string) error {
	return &ValidationError{Op: op, Fields: map[string]string{field: message}}
}

// AddFieldError records field on the ValidationError in err, starting a new
// one when err is nil or of another kind.
func AddFieldError(err error, field, message string) error {
	if ve := validationError(err); ve != nil {
		ve.Fields[field] = message
		return ve
	}
	return &ValidationError{Fields: map[string]string{field: message}}
}

func validationError(err error) *ValidationError {
	var ve *ValidationError
	if err != nil && errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsValidationError(err error) bool {
	return validationError(err) != nil
}

// GetValidationFields returns the per-field messages, or nil.
func GetValidationFields(err error) map[string]string {
	if ve := validationError(err); ve != nil {
		return ve.Fields
	}
	return nil
}

func NotFound(op, resource, identifier string) error {
	return Errorf(ENOTFOUND, op, "%s not found: %s", resource, identifier)
}

func Invalid(op, message string) error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

func Conflict(op, message string) error {
	return &Error{Code: ECONFLICT, Op: op, Message: message}
}

// Upstream marks a payment gateway failure. The gateway payload stays in Err
// and never reaches the client.
func Upstream(err error, op string) error {
	return &Error{Code: EUPSTREAM, Op: op, Message: "Payment gateway request failed", Err: err}
}

// Internal wraps err with a log-only message; clients see a generic one.
func Internal(err error, op, message string) error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}
