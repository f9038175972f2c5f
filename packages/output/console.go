// Package output renders call results for the fetchkit CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/fetchkit/packages/client"
	"github.com/abdul-hamid-achik/fetchkit/packages/metrics"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatResponse prints a successful call: the request line, elapsed time and
// the parsed body as indented JSON (or raw text).
func (f *ConsoleFormatter) FormatResponse(method, url string, body any, elapsed time.Duration) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s %s %s\n", green("✓"), bold(method), url,
		cyan(fmt.Sprintf("(%dms)", elapsed.Milliseconds())))

	switch v := body.(type) {
	case nil:
		if f.verbose {
			fmt.Fprintf(f.writer, "  (empty body)\n")
		}
	case string:
		fmt.Fprintf(f.writer, "%s\n", v)
	default:
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(f.writer, "%v\n", v)
			return
		}
		fmt.Fprintf(f.writer, "%s\n", pretty)
	}
}

// FormatResponseError prints a normalized API failure, including the per-field
// validation messages when present.
func (f *ConsoleFormatter) FormatResponseError(method, url string, respErr *client.ResponseError) {
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if respErr.Status != 0 {
		fmt.Fprintf(f.writer, "%s %s %s %s\n", red("✗"), bold(method), url,
			red(fmt.Sprintf("(%d %s)", respErr.Status, respErr.Name)))
	} else {
		fmt.Fprintf(f.writer, "%s %s %s %s\n", red("✗"), bold(method), url, red(respErr.Name))
	}
	fmt.Fprintf(f.writer, "  %s\n", respErr.Message)

	for field, messages := range respErr.ValidationErrors {
		for _, m := range messages {
			fmt.Fprintf(f.writer, "  %s %s: %s\n", red("→"), field, m)
		}
	}
}

// FormatError prints a non-request failure (bad flags, unreadable files).
func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

// FormatExtract prints a single extracted response field.
func (f *ConsoleFormatter) FormatExtract(path, value string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(f.writer, "%s = %s\n", cyan(path), value)
}

// FormatStats prints a latency snapshot after a repeated run.
func (f *ConsoleFormatter) FormatStats(stats metrics.Stats) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold("Latency:"))
	fmt.Fprintf(f.writer, "  Requests: %d\n", stats.Count)
	fmt.Fprintf(f.writer, "  Mean:     %s\n", stats.Mean.Round(time.Microsecond))
	fmt.Fprintf(f.writer, "  P50:      %s\n", stats.P50.Round(time.Microsecond))
	fmt.Fprintf(f.writer, "  P95:      %s\n", stats.P95.Round(time.Microsecond))
	fmt.Fprintf(f.writer, "  P99:      %s\n", stats.P99.Round(time.Microsecond))
	fmt.Fprintf(f.writer, "  Max:      %s\n", stats.Max.Round(time.Microsecond))
}
