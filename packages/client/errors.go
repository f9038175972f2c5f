package client

import (
	"fmt"
	"net/http"
)

// UnknownError is the sentinel used when a failed response carries no
// parseable body.
const UnknownError = "Unknown error"

// ResponseError is the normalized failure for a single call. Status is the
// transport status code, or 0 for a pure transport failure (connection
// refused, context cancelled, DNS error). ValidationErrors preserves the
// server's field -> messages mapping as-is.
type ResponseError struct {
	Name             string
	Message          string
	Status           int
	ValidationErrors map[string][]string
}

func (e *ResponseError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Name, e.Message, e.Status)
}

// IsClientError reports whether the error carries a 4xx status.
func (e *ResponseError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// IsServerError reports whether the error carries a 5xx status.
func (e *ResponseError) IsServerError() bool {
	return e.Status >= 500
}

// HasValidationErrors reports whether the server attached per-field messages.
func (e *ResponseError) HasValidationErrors() bool {
	return len(e.ValidationErrors) > 0
}

// newTransportError wraps a network-level failure that never produced a
// response.
func newTransportError(err error) *ResponseError {
	return &ResponseError{
		Name:             "Network error",
		Message:          err.Error(),
		ValidationErrors: map[string][]string{},
	}
}

// classifyFailure builds a ResponseError from a non-2xx response whose body
// has already been decoded by decodeBody. The body may be a JSON object, a
// bare string, or nothing at all.
func classifyFailure(status int, parsed any) *ResponseError {
	respErr := &ResponseError{
		Status:           status,
		ValidationErrors: map[string][]string{},
	}

	switch body := parsed.(type) {
	case nil:
		respErr.Name = UnknownError
		respErr.Message = UnknownError
	case string:
		respErr.Name = http.StatusText(status)
		respErr.Message = body
	case map[string]any:
		respErr.Name = stringField(body, "name", http.StatusText(status))
		respErr.Message = stringField(body, "message", UnknownError)
		respErr.ValidationErrors = validationErrors(body["validationErrors"])
	default:
		// Arrays, numbers and other JSON shapes carry no usable fields.
		respErr.Name = http.StatusText(status)
		respErr.Message = UnknownError
	}

	return respErr
}

func stringField(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// validationErrors converts the decoded validationErrors value into the
// field -> messages mapping, dropping entries of unexpected shape.
func validationErrors(v any) map[string][]string {
	out := map[string][]string{}
	fields, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for field, raw := range fields {
		switch messages := raw.(type) {
		case []any:
			for _, m := range messages {
				if s, ok := m.(string); ok {
					out[field] = append(out[field], s)
				}
			}
		case string:
			out[field] = append(out[field], messages)
		}
	}
	return out
}
