package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/fetchkit/packages/endpoints"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an endpoints file",
	Long: `Validate an endpoints YAML file without calling anything.

Examples:
  fetchkit validate
  fetchkit validate ./endpoints.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.Endpoints
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	problems, err := endpoints.ValidateFile(data)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %s\n", path, p)
		}
		os.Exit(ExitValidationError)
	}

	// Schema-clean files can still carry duplicate names; Parse catches those.
	if _, err := endpoints.Parse(data); err != nil {
		fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", path, err)
		os.Exit(ExitValidationError)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", path)
	return nil
}
