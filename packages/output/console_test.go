package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abdul-hamid-achik/fetchkit/packages/client"
	"github.com/abdul-hamid-achik/fetchkit/packages/metrics"
)

func newBufferFormatter(buf *bytes.Buffer) *ConsoleFormatter {
	return NewConsoleFormatter(WithWriter(buf), WithNoColor(true))
}

func TestConsoleFormatter_FormatResponse(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf)

	f.FormatResponse("GET", "/users", map[string]any{"id": 7}, 42*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "GET /users")
	assert.Contains(t, out, "(42ms)")
	assert.Contains(t, out, `"id": 7`)
}

func TestConsoleFormatter_FormatResponseTextBody(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf)

	f.FormatResponse("GET", "/ping", "pong", time.Millisecond)
	assert.Contains(t, buf.String(), "pong")
}

func TestConsoleFormatter_FormatResponseError(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf)

	f.FormatResponseError("POST", "/users", &client.ResponseError{
		Status:  422,
		Name:    "ValidationError",
		Message: "invalid input",
		ValidationErrors: map[string][]string{
			"email": {"required"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "422 ValidationError")
	assert.Contains(t, out, "invalid input")
	assert.Contains(t, out, "email: required")
}

func TestConsoleFormatter_FormatStats(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf)

	f.FormatStats(metrics.Stats{Count: 10, P50: 5 * time.Millisecond})

	out := buf.String()
	assert.Contains(t, out, "Requests: 10")
	assert.Contains(t, out, "P50:")
}
