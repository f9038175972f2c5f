package cmd

// Exit codes for the fetchkit CLI
const (
	// ExitSuccess indicates the call completed with a 2xx response
	ExitSuccess = 0

	// ExitRequestFailure indicates the API reported a failure
	ExitRequestFailure = 1

	// ExitValidationError indicates an endpoints file or schema check failed
	ExitValidationError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
