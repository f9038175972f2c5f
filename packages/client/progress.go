package client

// ProgressType identifies the phase a progress event belongs to.
type ProgressType string

const (
	// ProgressProcessing fires before the request is dispatched.
	ProgressProcessing ProgressType = "processing"
	// ProgressSuccess fires after a 2xx response.
	ProgressSuccess ProgressType = "success"
	// ProgressError fires after a failed response or transport error.
	ProgressError ProgressType = "error"
)

// ProgressEvent is a transient phase notification delivered at most once per
// phase per request.
type ProgressEvent struct {
	Type    ProgressType
	Message string
}

// ProgressReporter receives progress events keyed by the request key. Events
// fire only when the matching *Msg option is set on the call, so a reporter
// never needs its own filtering.
type ProgressReporter interface {
	Report(requestKey string, ev ProgressEvent)
}

// ReporterFunc adapts a plain function to the ProgressReporter interface.
type ReporterFunc func(requestKey string, ev ProgressEvent)

func (f ReporterFunc) Report(requestKey string, ev ProgressEvent) {
	f(requestKey, ev)
}

// Router is the navigation collaborator invoked for success/error redirects.
type Router interface {
	Push(path string)
}

// RouterFunc adapts a plain function to the Router interface.
type RouterFunc func(path string)

func (f RouterFunc) Push(path string) {
	f(path)
}
