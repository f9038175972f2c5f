package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/fetchkit/packages/config"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag    string
	hostFlag      string
	portFlag      int
	schemeFlag    string
	apiVersion    string
	basePathFlag  string
	endpointsFlag string
	verboseFlag   bool
	noColorFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "fetchkit",
	Short: "Call JSON APIs from the command line.",
	Long: `fetchkit is a thin client for JSON APIs. Point it at a host,
optionally describe your endpoints in a YAML file, and call them by name
or as METHOD /path pairs.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to a config file")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "API host, with or without scheme")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "API port")
	rootCmd.PersistentFlags().StringVar(&schemeFlag, "scheme", "", "URL scheme (default https)")
	rootCmd.PersistentFlags().StringVar(&apiVersion, "api-version", "", "API version segment (e.g. v2)")
	rootCmd.PersistentFlags().StringVar(&basePathFlag, "base-path", "", "segment before the version (default /api, pass '-' for none)")
	rootCmd.PersistentFlags().StringVar(&endpointsFlag, "endpoints", "", "path to the endpoints YAML file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(endpointsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges the config file with command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	overrides := &config.Config{
		Host:      hostFlag,
		Port:      portFlag,
		Scheme:    schemeFlag,
		Version:   apiVersion,
		Endpoints: endpointsFlag,
	}
	switch basePathFlag {
	case "":
	case "-":
		overrides.BasePath = config.StringPtr("")
	default:
		overrides.BasePath = config.StringPtr(basePathFlag)
	}
	if verboseFlag {
		overrides.Verbose = config.BoolPtr(true)
	}
	if noColorFlag {
		overrides.NoColor = config.BoolPtr(true)
	}

	return cfg.Merge(overrides), nil
}
