package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// buildJSONBody encodes the parameters as a JSON request body.
func buildJSONBody(params *Params) (*bytes.Buffer, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewBuffer(data), nil
}

// buildMultipartBody builds a multipart form body from the parameters.
// Scalar values are appended by name, single files under their field name,
// and file arrays under indexed field names ("name[0]", "name[1]", ...).
// Returns the body and the boundary-bearing content type.
func buildMultipartBody(params *Params) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, key := range params.Keys() {
		value, _ := params.Get(key)
		switch v := value.(type) {
		case *File:
			if err := writeFilePart(writer, key, v); err != nil {
				return nil, "", err
			}
		case []*File:
			for i, f := range v {
				field := fmt.Sprintf("%s[%d]", key, i)
				if err := writeFilePart(writer, field, f); err != nil {
					return nil, "", err
				}
			}
		default:
			if err := writer.WriteField(key, fmt.Sprint(v)); err != nil {
				return nil, "", fmt.Errorf("write field %q: %w", key, err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func writeFilePart(writer *multipart.Writer, field string, f *File) error {
	part, err := writer.CreateFormFile(field, f.Name)
	if err != nil {
		return fmt.Errorf("create file part %q: %w", field, err)
	}
	if f.Content == nil {
		return nil
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return fmt.Errorf("copy file %q: %w", f.Name, err)
	}
	return nil
}
