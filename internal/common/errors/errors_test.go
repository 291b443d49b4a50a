package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderBadStatusError_KeepsJSONBody(t *testing.T) {
	err := NewProviderBadStatusError("yelp", 400, []byte(` {"error":{"code":"VALIDATION_ERROR"}} `))

	assert.Equal(t, ErrCodeProviderBadStatus, err.Code)
	assert.False(t, err.Retryable)
	assert.JSONEq(t, `{"error":{"code":"VALIDATION_ERROR"}}`, string(err.Upstream))
	assert.Equal(t, 400, err.Metadata["status"])
}

func TestNewProviderBadStatusError_PlainTextBody(t *testing.T) {
	err := NewProviderBadStatusError("google", 502, []byte("bad gateway"))

	assert.Nil(t, err.Upstream)
	assert.Equal(t, "bad gateway", err.Details)
	assert.True(t, err.Retryable)
}

func TestNewProviderBadStatusError_EmptyJSONBodyFallsBackToMessage(t *testing.T) {
	bodies := map[string]string{
		"null":         `null`,
		"empty string": `""`,
		"false":        `false`,
		"zero":         `0`,
		"padded null":  " null\n",
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			err := NewProviderBadStatusError("google", 500, []byte(body))

			assert.Nil(t, err.Upstream)
			assert.Empty(t, err.Details)
			assert.Equal(t, "google returned status 500", Payload(err))
		})
	}
}

func TestNewProviderBadStatusError_NonEmptyJSONKept(t *testing.T) {
	for _, body := range []string{`{}`, `[]`, `"denied"`, `true`, `401`} {
		err := NewProviderBadStatusError("yelp", 400, []byte(body))
		assert.Equal(t, json.RawMessage(body), Payload(err), body)
	}
}

func TestPayload(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want interface{}
	}{
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			want: "boom",
		},
		{
			name: "upstream body",
			err:  NewProviderBadStatusError("yelp", 401, []byte(`{"error":"unauthorized"}`)),
			want: json.RawMessage(`{"error":"unauthorized"}`),
		},
		{
			name: "message with details",
			err:  NewProviderDecodeFailedError("azure-maps", fmt.Errorf("unexpected EOF")),
			want: "azure-maps returned a malformed response: unexpected EOF",
		},
		{
			name: "status without body",
			err:  NewProviderBadStatusError("google", 500, nil),
			want: "google returned status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Payload(tt.err))
		})
	}
}

func TestStandardError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewProviderTimeoutError("yelp", fmt.Errorf("deadline exceeded")))

	assert.True(t, stderrors.Is(err, ErrProviderTimeout))
	assert.False(t, stderrors.Is(err, ErrProviderStatus))
}

func TestStandardError_UnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewProviderRequestFailedError("google", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, IsRetryable(err))
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	std := Normalize(fmt.Errorf("surprise"))
	require.NotNil(t, std)
	assert.Equal(t, ErrCodeInternal, std.Code)
	assert.Equal(t, "surprise", std.Details)

	original := NewInvalidRequestError("prompt required")
	assert.Same(t, original, Normalize(fmt.Errorf("ctx: %w", original)))
}

func TestToErrorVariables(t *testing.T) {
	vars := NewResultWriteFailedError("redis", fmt.Errorf("dial tcp")).ToErrorVariables()

	assert.Equal(t, "RESULT_WRITE_FAILED", vars["errorCode"])
	assert.Equal(t, "redis", vars["sink"])
	assert.Equal(t, true, vars["retryable"])
}
