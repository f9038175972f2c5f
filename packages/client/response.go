package client

import (
	"encoding/json"
	"strings"
)

// decodeBody interprets a response body by its declared content type: a type
// containing "json" is parsed into a generic value, one containing "text" is
// read as a string, and anything else yields nil. The same rule applies to
// success and error bodies. A JSON body that fails to parse also yields nil;
// the caller decides whether that matters.
func decodeBody(contentType string, body []byte) any {
	switch {
	case strings.Contains(contentType, "json"):
		var parsed any
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil
		}
		return parsed
	case strings.Contains(contentType, "text"):
		return string(body)
	default:
		return nil
	}
}
