package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ContactError
		want string
	}{
		{
			name: "code and message",
			err:  NewValidationError(ErrCodeRequiredField, "email is required"),
			want: "[ERR_REQUIRED_FIELD] email is required",
		},
		{
			name: "with component",
			err:  NewBusyError(ErrCodeSubmissionInProgress, "busy").WithComponent("contact"),
			want: "[ERR_SUBMISSION_IN_PROGRESS] component:contact busy",
		},
		{
			name: "with cause",
			err:  NewNetworkError(ErrCodeTransport, "request did not complete", fmt.Errorf("connection refused")),
			want: "[ERR_TRANSPORT] request did not complete: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestContactError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("submit: %w", NewNetworkError(ErrCodeTransport, "failed", cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, NewNetworkError(ErrCodeTransport, "other message", nil))
	assert.NotErrorIs(t, err, NewNetworkError(ErrCodeRejected, "failed", nil))
	assert.NotErrorIs(t, err, NewServerError(ErrCodeTransport, "failed", 500))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err         *ContactError
		wantType    ErrorType
		recoverable bool
	}{
		{NewValidationError("c", "m"), ErrorTypeValidation, true},
		{NewNetworkError("c", "m", nil), ErrorTypeNetwork, true},
		{NewServerError("c", "m", 400), ErrorTypeServer, true},
		{NewBusyError("c", "m"), ErrorTypeBusy, true},
		{NewConfigError("c", "m"), ErrorTypeConfig, false},
		{NewPlatformError("c", "m", nil), ErrorTypePlatform, true},
		{NewInternalError("c", "m", nil), ErrorTypeInternal, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.wantType), func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.True(t, IsType(tt.err, tt.wantType))
			assert.Equal(t, tt.recoverable, IsRecoverable(tt.err))
		})
	}

	assert.Equal(t, 400, NewServerError("c", "m", 400).Context["status"])
}

func TestHelpersOnForeignErrors(t *testing.T) {
	plain := errors.New("plain")
	assert.False(t, IsRecoverable(plain))
	assert.False(t, IsType(plain, ErrorTypeNetwork))
	assert.False(t, IsBusy(plain))
	assert.False(t, IsBusy(nil))

	assert.True(t, IsBusy(fmt.Errorf("wrapped: %w", NewBusyError(ErrCodeSubmissionInProgress, "busy"))))
}

func TestValidationErrorCollection(t *testing.T) {
	var errs ValidationErrorCollection
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "no validation errors", errs.Error())

	errs.AddField("email", "required")
	assert.Equal(t, "validation error in field 'email': required", errs.Error())

	errs.AddField("subject", "required")
	assert.True(t, errs.HasErrors())
	assert.Equal(t, "validation failed with 2 errors", errs.Error())
	assert.Equal(t, []string{"email", "subject"}, errs.Fields())

	ce := errs.ToContactError()
	assert.Equal(t, ErrorTypeValidation, ce.Type)
	assert.Equal(t, ErrCodeRequiredField, ce.Code)
	assert.Equal(t, []string{"email", "subject"}, ce.Context["fields"])
}

type logEntry struct {
	level string
	err   error
}

type fakeLogger struct {
	entries []logEntry
}

func (l *fakeLogger) Error(_ context.Context, err error, _ string, _ ...interface{}) {
	l.entries = append(l.entries, logEntry{"error", err})
}

func (l *fakeLogger) Warn(_ context.Context, err error, _ string, _ ...interface{}) {
	l.entries = append(l.entries, logEntry{"warn", err})
}

func TestErrorHandler(t *testing.T) {
	logger := &fakeLogger{}
	h := NewErrorHandler(logger)
	ctx := context.Background()

	h.Handle(ctx, nil)
	h.Handle(ctx, NewServerError(ErrCodeRejected, "Invalid email", 400))
	h.Handle(ctx, NewConfigError(ErrCodeConfigInvalid, "bad port"))
	h.Handle(ctx, errors.New("plain"))

	require.Len(t, logger.entries, 3)
	assert.Equal(t, "warn", logger.entries[0].level)
	assert.Equal(t, "error", logger.entries[1].level)
	assert.Equal(t, "error", logger.entries[2].level)

	assert.NotPanics(t, func() { NewErrorHandler(nil).Handle(ctx, errors.New("x")) })
}
