package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/fetchkit/packages/client"
	"github.com/abdul-hamid-achik/fetchkit/packages/endpoints"
	"github.com/abdul-hamid-achik/fetchkit/packages/metrics"
	"github.com/abdul-hamid-achik/fetchkit/packages/output"
)

var (
	paramFlags    []string
	fileFlags     []string
	extractFlag   string
	schemaFlag    string
	watchFlag     bool
	repeatFlag    int
	rpsFlag       float64
	statsFlag     bool
	processingMsg string
	successMsg    string
	errorMsg      string
)

var callCmd = &cobra.Command{
	Use:   "call <endpoint> | call <METHOD> <path>",
	Short: "Execute an API call",
	Long: `Execute a single API call, either against a named endpoint from the
endpoints file or as an explicit METHOD /path pair.

Examples:
  fetchkit call listUsers
  fetchkit call GET /users --param page=2
  fetchkit call POST /users --param name=ada --success-msg "User created"
  fetchkit call POST /uploads --file attachments=./a.png --file attachments=./b.png
  fetchkit call listUsers --watch
  fetchkit call GET /health --repeat 50 --rps 10 --stats`,
	Args: cobra.RangeArgs(1, 2),
	RunE: callCommand,
}

func init() {
	callCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "request parameter as key=value (repeatable)")
	callCmd.Flags().StringArrayVar(&fileFlags, "file", nil, "file upload as field=path (repeat a field for an indexed array)")
	callCmd.Flags().StringVar(&extractFlag, "extract", "", "print only this JSON path of the response")
	callCmd.Flags().StringVar(&schemaFlag, "schema", "", "validate the response body against this JSON Schema file")
	callCmd.Flags().BoolVar(&watchFlag, "watch", false, "re-run when the endpoints file changes")
	callCmd.Flags().IntVar(&repeatFlag, "repeat", 1, "number of times to execute the call")
	callCmd.Flags().Float64Var(&rpsFlag, "rps", 0, "throttle repeated calls to this rate")
	callCmd.Flags().BoolVar(&statsFlag, "stats", false, "print a latency summary after the run")
	callCmd.Flags().StringVar(&processingMsg, "processing-msg", "", "progress message before dispatch")
	callCmd.Flags().StringVar(&successMsg, "success-msg", "", "progress message on success")
	callCmd.Flags().StringVar(&errorMsg, "error-msg", "", "progress message on failure")
}

func callCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Host == "" {
		return fmt.Errorf("no host configured: use --host or a config file")
	}

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(cfg.GetVerbose()),
		output.WithNoColor(cfg.GetNoColor()),
	)

	recorder := metrics.NewRecorder()
	opts := []client.Option{
		client.WithBasePath(cfg.GetBasePath()),
		client.WithRecorder(recorder),
		client.WithDefaultHeaders(cfg.Headers),
		client.WithProgressReporter(client.ReporterFunc(func(key string, ev client.ProgressEvent) {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", ev.Type, ev.Message)
		})),
	}
	if cfg.Scheme != "" {
		opts = append(opts, client.WithScheme(cfg.Scheme))
	}
	if cfg.Port > 0 {
		opts = append(opts, client.WithPort(cfg.Port))
	}
	if cfg.Version != "" {
		opts = append(opts, client.WithVersion(cfg.Version))
	}
	if rpsFlag > 0 {
		opts = append(opts, client.WithRateLimit(rpsFlag))
	}
	if cfg.Timeout > 0 {
		jar, _ := cookiejar.New(nil)
		opts = append(opts, client.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
			Jar:     jar,
		}))
	}
	if cfg.GetVerbose() {
		logger, err := zap.NewDevelopment()
		if err == nil {
			defer func() { _ = logger.Sync() }()
			opts = append(opts, client.WithLogger(logger))
		}
	}

	c := client.New(cfg.Host, opts...)

	params, err := parseParams()
	if err != nil {
		return err
	}

	callOpts := &client.Options{PropagateError: true}
	if cmd.Flags().Changed("processing-msg") {
		callOpts.ProcessingMsg = client.Msg(processingMsg)
	}
	if cmd.Flags().Changed("success-msg") {
		callOpts.SuccessMsg = client.Msg(successMsg)
	}
	if cmd.Flags().Changed("error-msg") {
		callOpts.ErrorMsg = client.Msg(errorMsg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// METHOD /path form needs no endpoints file; the single-arg form names an
	// endpoint from the registry.
	var registry *client.Registry[*endpoints.Set]
	runOnce := func() (any, *client.ResponseError) {
		if len(args) == 2 {
			method := strings.ToUpper(args[0])
			body, err := c.Do(ctx, method, client.Descriptor{Path: args[1], Params: params, Options: callOpts})
			return body, asResponseError(err)
		}
		body, err := registry.Endpoints().Invoke(ctx, c, args[0], params, callOpts)
		return body, asResponseError(err)
	}

	if len(args) == 1 {
		set, err := endpoints.Load(cfg.Endpoints)
		if err != nil {
			formatter.FormatError(err)
			os.Exit(ExitConfigError)
		}
		registry = client.NewRegistry(c, func(*client.Client) *endpoints.Set { return set })
	}

	if repeatFlag < 1 {
		repeatFlag = 1
	}

	run := func() bool {
		ok := true
		for i := 0; i < repeatFlag; i++ {
			start := time.Now()
			body, respErr := runOnce()
			elapsed := time.Since(start)
			last := i == repeatFlag-1
			if respErr != nil {
				formatter.FormatResponseError(displayMethod(args), displayTarget(args), respErr)
				ok = false
				continue
			}
			if last || cfg.GetVerbose() {
				if !renderSuccess(formatter, args, body, elapsed) {
					ok = false
				}
			}
		}
		if statsFlag || repeatFlag > 1 {
			formatter.FormatStats(recorder.Snapshot())
		}
		return ok
	}

	ok := run()

	if watchFlag && registry != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n", cfg.Endpoints)
		err := endpoints.Watch(cfg.Endpoints,
			func(set *endpoints.Set) {
				registry.Register(func(*client.Client) *endpoints.Set { return set })
				fmt.Fprintf(cmd.OutOrStdout(), "\nEndpoints reloaded, re-running...\n")
				run()
			},
			func(err error) { formatter.FormatError(err) },
			ctx.Done(),
		)
		if err != nil {
			return err
		}
		return nil
	}

	if !ok {
		os.Exit(ExitRequestFailure)
	}
	return nil
}

// renderSuccess prints the response and applies --extract and --schema.
// Returns false when the schema check fails.
func renderSuccess(formatter *output.ConsoleFormatter, args []string, body any, elapsed time.Duration) bool {
	if extractFlag != "" {
		data, err := json.Marshal(body)
		if err != nil {
			formatter.FormatError(fmt.Errorf("extract %s: %w", extractFlag, err))
			return false
		}
		result := gjson.GetBytes(data, extractFlag)
		formatter.FormatExtract(extractFlag, result.String())
	} else {
		formatter.FormatResponse(displayMethod(args), displayTarget(args), body, elapsed)
	}

	if schemaFlag != "" {
		problems, err := checkSchema(schemaFlag, body)
		if err != nil {
			formatter.FormatError(err)
			return false
		}
		if len(problems) > 0 {
			for _, p := range problems {
				formatter.FormatError(fmt.Errorf("schema: %s", p))
			}
			return false
		}
	}
	return true
}

func checkSchema(path string, body any) ([]string, error) {
	schemaData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaData)
	documentLoader := gojsonschema.NewGoLoader(body)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validate response: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}
	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return problems, nil
}

func parseParams() (*client.Params, error) {
	params := client.NewParams()
	for _, p := range paramFlags {
		key, value, found := strings.Cut(p, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", p)
		}
		params.Set(key, value)
	}

	// Repeated --file flags on the same field become a file array.
	fileFields := map[string][]*client.File{}
	var fieldOrder []string
	for _, f := range fileFlags {
		field, path, found := strings.Cut(f, "=")
		if !found || field == "" {
			return nil, fmt.Errorf("invalid --file %q, want field=path", f)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", path, err)
		}
		if _, seen := fileFields[field]; !seen {
			fieldOrder = append(fieldOrder, field)
		}
		fileFields[field] = append(fileFields[field], client.FileFromBytes(baseName(path), data))
	}
	for _, field := range fieldOrder {
		files := fileFields[field]
		if len(files) == 1 {
			params.Set(field, files[0])
		} else {
			params.Set(field, files)
		}
	}

	return params, nil
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func displayMethod(args []string) string {
	if len(args) == 2 {
		return strings.ToUpper(args[0])
	}
	return "CALL"
}

func displayTarget(args []string) string {
	if len(args) == 2 {
		return args[1]
	}
	return args[0]
}

func asResponseError(err error) *client.ResponseError {
	if err == nil {
		return nil
	}
	if respErr, ok := err.(*client.ResponseError); ok {
		return respErr
	}
	return &client.ResponseError{Name: "Error", Message: err.Error()}
}
