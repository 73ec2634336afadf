package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeServer     ErrorType = "server"
	ErrorTypeBusy       ErrorType = "busy"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypePlatform   ErrorType = "platform"
	ErrorTypeInternal   ErrorType = "internal"
)

// ContactError is a structured error type with context.
type ContactError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	Recoverable bool
}

// Error implements the error interface.
func (e *ContactError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ContactError) Unwrap() error {
	return e.Cause
}

// Is matches on Type and Code so sentinel values work with errors.Is.
func (e *ContactError) Is(target error) bool {
	var t *ContactError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ContactError) WithContext(key string, value interface{}) *ContactError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithComponent adds component context.
func (e *ContactError) WithComponent(component string) *ContactError {
	e.Component = component

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ContactError {
	return &ContactError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewNetworkError creates a transport error. The request never completed.
func NewNetworkError(code, message string, cause error) *ContactError {
	return &ContactError{
		Type:        ErrorTypeNetwork,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewServerError creates an error for a response the backend rejected.
func NewServerError(code, message string, status int) *ContactError {
	return (&ContactError{
		Type:        ErrorTypeServer,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}).WithContext("status", status)
}

// NewBusyError creates an error for an operation refused because another one
// is still running.
func NewBusyError(code, message string) *ContactError {
	return &ContactError{
		Type:        ErrorTypeBusy,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ContactError {
	return &ContactError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewPlatformError creates an error raised by a platform capability such as a
// browser launcher.
func NewPlatformError(code, message string, cause error) *ContactError {
	return &ContactError{
		Type:        ErrorTypePlatform,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ContactError {
	return &ContactError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var ce *ContactError
	if errors.As(err, &ce) {
		return ce.Recoverable
	}

	return false
}

// IsType reports whether err is a ContactError of the given type.
func IsType(err error, t ErrorType) bool {
	var ce *ContactError
	if errors.As(err, &ce) {
		return ce.Type == t
	}

	return false
}

// IsBusy checks if an error was caused by a concurrent operation.
func IsBusy(err error) bool {
	return IsType(err, ErrorTypeBusy)
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs an error at a level matching its type.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var ce *ContactError
	if !errors.As(err, &ce) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch ce.Type {
	case ErrorTypeValidation, ErrorTypeBusy, ErrorTypeServer, ErrorTypeNetwork:
		h.logger.Warn(ctx, ce, "Recoverable error occurred",
			"type", ce.Type,
			"code", ce.Code,
			"component", ce.Component)
	default:
		h.logger.Error(ctx, ce, "Error occurred",
			"type", ce.Type,
			"code", ce.Code,
			"component", ce.Component)
	}
}

// Common error codes.
const (
	ErrCodeSubmissionInProgress = "ERR_SUBMISSION_IN_PROGRESS"
	ErrCodeMissingSurface       = "ERR_MISSING_SURFACE"
	ErrCodeRequiredField        = "ERR_REQUIRED_FIELD"
	ErrCodeTransport            = "ERR_TRANSPORT"
	ErrCodeRejected             = "ERR_REJECTED"
	ErrCodeConfigInvalid        = "ERR_CONFIG_INVALID"
	ErrCodeUnknownChannel       = "ERR_UNKNOWN_CHANNEL"
	ErrCodeLaunchFailed         = "ERR_LAUNCH_FAILED"
	ErrCodeUnsupportedPlatform  = "ERR_UNSUPPORTED_PLATFORM"
	ErrCodeUnsafeURL            = "ERR_UNSAFE_URL"
	ErrCodeInternalError        = "ERR_INTERNAL"
)

// FieldValidationError reports a single form field that failed validation.
type FieldValidationError struct {
	FieldName    string
	ErrorMessage string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", fve.FieldName, fve.ErrorMessage)
}

// ValidationErrorCollection represents a collection of validation errors.
type ValidationErrorCollection struct {
	Errors []*FieldValidationError
}

// Error implements the error interface.
func (vec *ValidationErrorCollection) Error() string {
	if len(vec.Errors) == 0 {
		return "no validation errors"
	}
	if len(vec.Errors) == 1 {
		return vec.Errors[0].Error()
	}

	return fmt.Sprintf("validation failed with %d errors", len(vec.Errors))
}

// AddField adds a field validation error to the collection.
func (vec *ValidationErrorCollection) AddField(field, message string) {
	vec.Errors = append(vec.Errors, &FieldValidationError{FieldName: field, ErrorMessage: message})
}

// Fields returns the names of the failing fields in insertion order.
func (vec *ValidationErrorCollection) Fields() []string {
	names := make([]string, 0, len(vec.Errors))
	for _, e := range vec.Errors {
		names = append(names, e.FieldName)
	}

	return names
}

// HasErrors returns true if there are any validation errors.
func (vec *ValidationErrorCollection) HasErrors() bool {
	return len(vec.Errors) > 0
}

// ToContactError converts the collection into a single validation error.
func (vec *ValidationErrorCollection) ToContactError() *ContactError {
	return NewValidationError(ErrCodeRequiredField, vec.Error()).
		WithContext("fields", vec.Fields())
}
