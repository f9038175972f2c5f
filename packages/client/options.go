package client

import (
	"fmt"
	"time"
)

// Options configures a single call. The three message fields are
// presence-gated: a progress event of the matching phase fires iff the field
// is non-nil, even when the message is empty. Use Msg to build them inline.
type Options struct {
	// RequestKey correlates progress events for this call. Defaults to a
	// timestamp+method+path composite.
	RequestKey string

	ProcessingMsg *string
	SuccessMsg    *string
	ErrorMsg      *string

	// SuccessRedirect / ErrorRedirect are literal paths pushed to the Router
	// after the matching outcome. The Func variants compute the path from the
	// parsed response body (success) or the normalized error (failure) and
	// take precedence over the literal when both are set.
	SuccessRedirect     string
	SuccessRedirectFunc func(body any) string
	ErrorRedirect       string
	ErrorRedirectFunc   func(err *ResponseError) string

	// PropagateError re-throws a failure to the caller after local handling.
	// The default is to swallow it: UI call sites handle failure through the
	// progress and redirect hooks instead of checking the returned error.
	PropagateError bool
}

// Msg returns a pointer to s for use as a presence-gated message option.
func Msg(s string) *string {
	return &s
}

// defaultRequestKey derives the progress-correlation key when the caller did
// not supply one.
func defaultRequestKey(method, path string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), method, path)
}

func (o *Options) successRedirectPath(body any) string {
	if o.SuccessRedirectFunc != nil {
		return o.SuccessRedirectFunc(body)
	}
	return o.SuccessRedirect
}

func (o *Options) errorRedirectPath(err *ResponseError) string {
	if o.ErrorRedirectFunc != nil {
		return o.ErrorRedirectFunc(err)
	}
	return o.ErrorRedirect
}
