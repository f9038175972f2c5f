package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBasePath is the path segment inserted between the host and the API
// version. A shared-gateway deployment overrides it with WithBasePath("").
const DefaultBasePath = "/api"

// LatencyRecorder receives the elapsed time of every dispatched request.
// Implemented by metrics.Recorder; the zero client records nothing.
type LatencyRecorder interface {
	Record(method, path string, elapsed time.Duration)
}

// Descriptor is the logical request for one call: a path relative to the
// client's base URL, the parameters, and the per-call options. It is built
// per call and never retained.
type Descriptor struct {
	Path    string
	Params  *Params
	Options *Options
}

// Client executes API requests against a single base URL. Construct it with
// New; the zero value is not usable. A Client is safe for concurrent use.
type Client struct {
	scheme   string
	host     string
	port     int
	version  string
	basePath string

	httpClient     *http.Client
	defaultHeaders map[string]string
	reporter       ProgressReporter
	router         Router
	recorder       LatencyRecorder
	limiter        *rate.Limiter
	logger         *zap.Logger
}

// Option configures a Client at construction time.
type Option func(*Client)

// New creates a Client for the given host. The host may carry an explicit
// scheme ("https://api.example.com"); without one the scheme defaults to
// https (override with WithScheme). Cookies are carried across calls so that
// session credentials are forwarded the way a browser would.
func New(host string, opts ...Option) *Client {
	c := &Client{
		scheme:         "https",
		host:           host,
		basePath:       DefaultBasePath,
		defaultHeaders: make(map[string]string),
		logger:         zap.NewNop(),
	}

	if i := strings.Index(host, "://"); i >= 0 {
		c.scheme = host[:i]
		c.host = host[i+3:]
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		jar, _ := cookiejar.New(nil)
		c.httpClient = &http.Client{Jar: jar}
	}

	return c
}

// WithScheme overrides the URL scheme (default https).
func WithScheme(scheme string) Option {
	return func(c *Client) {
		c.scheme = scheme
	}
}

// WithPort sets an explicit port on the base URL.
func WithPort(port int) Option {
	return func(c *Client) {
		c.port = port
	}
}

// WithVersion sets the API version segment of the base URL.
func WithVersion(version string) Option {
	return func(c *Client) {
		c.version = version
	}
}

// WithBasePath overrides the segment between host and version. Pass "" for
// gateway-style bases of the form host[:port]/version.
func WithBasePath(basePath string) Option {
	return func(c *Client) {
		c.basePath = basePath
	}
}

// WithHTTPClient injects the underlying transport. Timeouts are inherited
// from it; the Client adds none of its own.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithDefaultHeader adds a header sent on every request.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithDefaultHeaders adds multiple headers sent on every request.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

// WithProgressReporter registers the receiver of progress events.
func WithProgressReporter(r ProgressReporter) Option {
	return func(c *Client) {
		c.reporter = r
	}
}

// WithRouter registers the navigation collaborator used for redirects.
func WithRouter(r Router) Option {
	return func(c *Client) {
		c.router = r
	}
}

// WithRecorder registers a latency recorder fed after every dispatch.
func WithRecorder(r LatencyRecorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithRateLimit throttles dispatches to rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the structured logger (default: no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// BaseURL returns scheme://host[:port] plus the base-path/version segments.
func (c *Client) BaseURL() string {
	var b strings.Builder
	b.WriteString(c.scheme)
	b.WriteString("://")
	b.WriteString(c.host)
	if c.port != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(c.port))
	}
	if c.version != "" {
		b.WriteString(c.basePath)
		b.WriteByte('/')
		b.WriteString(c.version)
	}
	return b.String()
}

// Get executes a GET request. Params are serialized into the query string in
// insertion order.
func (c *Client) Get(ctx context.Context, path string, params *Params, opts *Options) (any, error) {
	return c.Do(ctx, http.MethodGet, Descriptor{Path: path, Params: params, Options: opts})
}

// Post executes a POST request with a JSON body, or a multipart body when any
// parameter is file-like.
func (c *Client) Post(ctx context.Context, path string, params *Params, opts *Options) (any, error) {
	return c.Do(ctx, http.MethodPost, Descriptor{Path: path, Params: params, Options: opts})
}

// Put executes a PUT request with the same body rules as Post.
func (c *Client) Put(ctx context.Context, path string, params *Params, opts *Options) (any, error) {
	return c.Do(ctx, http.MethodPut, Descriptor{Path: path, Params: params, Options: opts})
}

// Delete executes a DELETE request with the same body rules as Post.
func (c *Client) Delete(ctx context.Context, path string, params *Params, opts *Options) (any, error) {
	return c.Do(ctx, http.MethodDelete, Descriptor{Path: path, Params: params, Options: opts})
}

// Do runs one request/response cycle: emit the processing event, dispatch,
// classify the outcome, emit the success or error event, perform the optional
// redirect, and either return the parsed body or handle the failure.
//
// A failure is swallowed by default: Do returns (nil, nil) after the local
// handling ran. Set Options.PropagateError to receive the *ResponseError.
func (c *Client) Do(ctx context.Context, method string, d Descriptor) (any, error) {
	opts := d.Options
	if opts == nil {
		opts = &Options{}
	}

	key := opts.RequestKey
	if key == "" {
		key = defaultRequestKey(method, d.Path)
	}

	if opts.ProcessingMsg != nil {
		c.report(key, ProgressEvent{Type: ProgressProcessing, Message: *opts.ProcessingMsg})
	}

	body, err := c.execute(ctx, method, d.Path, d.Params)
	if err != nil {
		respErr, ok := err.(*ResponseError)
		if !ok {
			respErr = newTransportError(err)
		}
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", d.Path),
			zap.Int("status", respErr.Status),
			zap.String("error", respErr.Message))

		if opts.ErrorMsg != nil {
			c.report(key, ProgressEvent{Type: ProgressError, Message: *opts.ErrorMsg})
		}
		if path := opts.errorRedirectPath(respErr); path != "" && c.router != nil {
			c.router.Push(path)
		}
		if opts.PropagateError {
			return nil, respErr
		}
		return nil, nil
	}

	if opts.SuccessMsg != nil {
		c.report(key, ProgressEvent{Type: ProgressSuccess, Message: *opts.SuccessMsg})
	}
	if path := opts.successRedirectPath(body); path != "" && c.router != nil {
		c.router.Push(path)
	}
	return body, nil
}

func (c *Client) report(key string, ev ProgressEvent) {
	if c.reporter != nil {
		c.reporter.Report(key, ev)
	}
}

// execute builds, dispatches and parses one request. Every failure is
// returned as a *ResponseError.
func (c *Client) execute(ctx context.Context, method, path string, params *Params) (any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, newTransportError(err)
		}
	}

	url := c.BaseURL() + path
	var body io.Reader
	var contentType string

	if method == http.MethodGet {
		if q := params.Encode(); q != "" {
			url += "?" + q
		}
	} else if params.Len() > 0 {
		if params.HasFiles() {
			buf, ct, err := buildMultipartBody(params)
			if err != nil {
				return nil, newTransportError(err)
			}
			body = buf
			contentType = ct
		} else {
			buf, err := buildJSONBody(params)
			if err != nil {
				return nil, newTransportError(err)
			}
			body = buf
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, newTransportError(fmt.Errorf("build request: %w", err))
	}

	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("dispatching request",
		zap.String("method", method),
		zap.String("url", url))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if c.recorder != nil {
		c.recorder.Record(method, path, elapsed)
	}
	if err != nil {
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(fmt.Errorf("read response: %w", err))
	}

	parsed := decodeBody(resp.Header.Get("Content-Type"), raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyFailure(resp.StatusCode, parsed)
	}

	c.logger.Debug("request succeeded",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))
	return parsed, nil
}
