package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		parsed      any
		wantName    string
		wantMessage string
	}{
		{"nil body", 500, nil, UnknownError, UnknownError},
		{"string body", 404, "it is gone", "Not Found", "it is gone"},
		{
			"object body",
			409,
			map[string]any{"name": "Conflict", "message": "already exists"},
			"Conflict", "already exists",
		},
		{
			"object body missing fields",
			400,
			map[string]any{"details": "nope"},
			"Bad Request", UnknownError,
		},
		{"array body", 502, []any{"a"}, "Bad Gateway", UnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			respErr := classifyFailure(tt.status, tt.parsed)
			assert.Equal(t, tt.status, respErr.Status)
			assert.Equal(t, tt.wantName, respErr.Name)
			assert.Equal(t, tt.wantMessage, respErr.Message)
			assert.NotNil(t, respErr.ValidationErrors)
		})
	}
}

func TestValidationErrorsConversion(t *testing.T) {
	got := validationErrors(map[string]any{
		"email": []any{"required", "invalid"},
		"name":  "too short",
		"age":   42, // unexpected shape, dropped
	})

	assert.Equal(t, []string{"required", "invalid"}, got["email"])
	assert.Equal(t, []string{"too short"}, got["name"])
	assert.NotContains(t, got, "age")

	assert.Empty(t, validationErrors(nil))
	assert.Empty(t, validationErrors("not a map"))
}

func TestResponseError_Error(t *testing.T) {
	withStatus := &ResponseError{Name: "NotFound", Message: "missing", Status: 404}
	assert.Equal(t, "NotFound: missing (status 404)", withStatus.Error())

	transport := &ResponseError{Name: "Network error", Message: "connection refused"}
	assert.Equal(t, "Network error: connection refused", transport.Error())
}

func TestResponseError_Classification(t *testing.T) {
	assert.True(t, (&ResponseError{Status: 404}).IsClientError())
	assert.False(t, (&ResponseError{Status: 404}).IsServerError())
	assert.True(t, (&ResponseError{Status: 503}).IsServerError())
	assert.False(t, (&ResponseError{Status: 0}).IsClientError())
}
