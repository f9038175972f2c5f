// Package client implements a thin façade over HTTP request execution for
// applications talking to a JSON API. It centralizes base-URL construction,
// request serialization (JSON or multipart), content-type-driven response
// parsing, error normalization into *ResponseError, and optional progress
// notification and redirects around the request lifecycle.
//
// A Client is built once with New and shared; each verb call (Get, Post, Put,
// Delete) runs a single synchronous request/response cycle. There is no retry,
// no request deduplication and no caching.
package client
