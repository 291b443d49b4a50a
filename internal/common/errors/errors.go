// Package errors provides the structured error type shared by providers,
// LLM clients, result sinks and the HTTP layer.
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProviderRequestFailed ErrorCode = "PROVIDER_REQUEST_FAILED"
	ErrCodeProviderBadStatus     ErrorCode = "PROVIDER_BAD_STATUS"
	ErrCodeProviderDecodeFailed  ErrorCode = "PROVIDER_DECODE_FAILED"
	ErrCodeProviderTimeout       ErrorCode = "PROVIDER_TIMEOUT"

	ErrCodeLLMRequestFailed ErrorCode = "LLM_REQUEST_FAILED"
	ErrCodeLLMEmptyResponse ErrorCode = "LLM_EMPTY_RESPONSE"
	ErrCodeLLMNotConfigured ErrorCode = "LLM_NOT_CONFIGURED"

	ErrCodeResultWriteFailed ErrorCode = "RESULT_WRITE_FAILED"
	ErrCodeResultCorrupted   ErrorCode = "RESULT_CORRUPTED"

	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	// Upstream is the raw JSON error body returned by a third-party API, if any.
	Upstream json.RawMessage `json:"-"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another StandardError by code, so errors.Is works against the
// sentinel values below.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrProviderTimeout  = &StandardError{Code: ErrCodeProviderTimeout}
	ErrProviderStatus   = &StandardError{Code: ErrCodeProviderBadStatus}
	ErrProviderDecode   = &StandardError{Code: ErrCodeProviderDecodeFailed}
	ErrProviderRequest  = &StandardError{Code: ErrCodeProviderRequestFailed}
	ErrLLMNotConfigured = &StandardError{Code: ErrCodeLLMNotConfigured}
	ErrResultCorrupted  = &StandardError{Code: ErrCodeResultCorrupted}
)

// ==========================
// 2. Error Constructors
// ==========================

// NewProviderRequestFailedError wraps a transport failure talking to a provider.
func NewProviderRequestFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderRequestFailed,
		Message:   fmt.Sprintf("%s request failed", provider),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewProviderTimeoutError reports a provider call that hit its deadline.
func NewProviderTimeoutError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   fmt.Sprintf("%s request timed out", provider),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewProviderBadStatusError records a non-2xx response. A JSON body is kept
// verbatim in Upstream so callers can surface the provider's own payload.
func NewProviderBadStatusError(provider string, status int, body []byte) *StandardError {
	e := &StandardError{
		Code:      ErrCodeProviderBadStatus,
		Message:   fmt.Sprintf("%s returned status %d", provider, status),
		Retryable: status >= 500,
		Metadata:  map[string]interface{}{"provider": provider, "status": status},
		Timestamp: time.Now().UTC(),
	}
	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0 || emptyJSON(trimmed):
	case json.Valid(trimmed):
		e.Upstream = json.RawMessage(trimmed)
	default:
		e.Details = string(trimmed)
	}
	return e
}

// emptyJSON reports a JSON body that carries nothing to show: null, false,
// an empty string or zero.
func emptyJSON(body []byte) bool {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	}
	return false
}

// NewProviderDecodeFailedError reports a 2xx response whose body could not be parsed.
func NewProviderDecodeFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderDecodeFailed,
		Message:   fmt.Sprintf("%s returned a malformed response", provider),
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewLLMRequestFailedError wraps any failure calling an LLM provider.
func NewLLMRequestFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMRequestFailed,
		Message:   fmt.Sprintf("%s request failed", provider),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewLLMEmptyResponseError is used when a provider answers without any candidate text.
func NewLLMEmptyResponseError(provider, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMEmptyResponse,
		Message:   message,
		Retryable: false,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMNotConfiguredError reports a missing API key.
func NewLLMNotConfiguredError(envKey string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMNotConfigured,
		Message:   fmt.Sprintf("%s not configured", envKey),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultWriteFailedError wraps a failure persisting a result record.
func NewResultWriteFailedError(sink string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultWriteFailed,
		Message:   fmt.Sprintf("failed to write result to %s", sink),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"sink": sink},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewResultCorruptedError reports a stored result file that is not a JSON array.
func NewResultCorruptedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultCorrupted,
		Message:   "existing result file is corrupted",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidRequestError is returned for request bodies that fail parsing or validation.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError wraps a configuration problem found at startup.
func NewConfigInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "invalid configuration",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Helpers
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// Payload returns what a caller should see for a failed upstream call: the
// provider's own JSON error body when it sent one, otherwise a readable message.
func Payload(err error) interface{} {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return err.Error()
	}
	if len(stdErr.Upstream) > 0 && !emptyJSON(stdErr.Upstream) {
		return stdErr.Upstream
	}
	if stdErr.Details != "" {
		return fmt.Sprintf("%s: %s", stdErr.Message, stdErr.Details)
	}
	return stdErr.Message
}

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}
