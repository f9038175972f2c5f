package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/fetchkit/packages/endpoints"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List endpoints from the endpoints file",
	Args:  cobra.NoArgs,
	RunE:  endpointsCommand,
}

func endpointsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	set, err := endpoints.Load(cfg.Endpoints)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", cfg.Endpoints)
	for _, def := range set.All() {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s %s\n", def.Name, def.Method, def.Path)
		if def.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", def.Description)
		}
	}
	return nil
}
