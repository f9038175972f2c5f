package client

import "sync"

// Registry holds a caller-defined set of named operations built atop the
// client's verb methods. T is whatever structured shape the caller wants —
// typically a struct of closures, one per endpoint. Re-registration replaces
// the whole set; nothing is merged.
type Registry[T any] struct {
	mu        sync.RWMutex
	client    *Client
	endpoints T
}

// NewRegistry builds the endpoint set by applying build to the client and
// stores it for later structured access.
func NewRegistry[T any](c *Client, build func(*Client) T) *Registry[T] {
	r := &Registry[T]{client: c}
	r.Register(build)
	return r
}

// Register replaces the endpoint set wholesale.
func (r *Registry[T]) Register(build func(*Client) T) {
	endpoints := build(r.client)
	r.mu.Lock()
	r.endpoints = endpoints
	r.mu.Unlock()
}

// Endpoints returns the current endpoint set.
func (r *Registry[T]) Endpoints() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.endpoints
}

// Client returns the client the endpoints were built against.
func (r *Registry[T]) Client() *Client {
	return r.client
}
