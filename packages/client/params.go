package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// File is a binary upload attached to a request. Name is the filename sent in
// the multipart part; Content is read once while the body is built.
type File struct {
	Name    string
	Content io.Reader
}

// FileFromBytes wraps an in-memory payload as an uploadable file.
func FileFromBytes(name string, data []byte) *File {
	return &File{Name: name, Content: bytes.NewReader(data)}
}

// Params is an ordered set of request parameters. For GET requests the
// entries are serialized into the query string in insertion order; for other
// methods they become the JSON body, or a multipart body when any entry is
// file-like (*File or []*File).
type Params struct {
	keys   []string
	values map[string]any
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Set adds or replaces a parameter, keeping first-insertion order.
func (p *Params) Set(key string, value any) *Params {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value for key and whether it is present.
func (p *Params) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the parameter names in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// HasFiles reports whether any parameter is file-like.
func (p *Params) HasFiles() bool {
	if p == nil {
		return false
	}
	for _, key := range p.keys {
		if isFileLike(p.values[key]) {
			return true
		}
	}
	return false
}

func isFileLike(v any) bool {
	switch v.(type) {
	case *File, []*File:
		return true
	}
	return false
}

// Encode serializes the parameters as a percent-encoded query string in
// insertion order. File-like values are skipped; they cannot travel in a URL.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, key := range p.keys {
		value := p.values[key]
		if isFileLike(value) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fmt.Sprint(value)))
	}
	return b.String()
}

// MarshalJSON emits the parameters as a JSON object in insertion order.
func (p *Params) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		b.Write(name)
		b.WriteByte(':')
		value, err := json.Marshal(p.values[key])
		if err != nil {
			return nil, err
		}
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
