package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Inspect array firmware and build metadata",
	}
	cmd.AddCommand(newSystemVersionCommand())
	return cmd
}

func newSystemVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the best-known SANtricity software version",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := client.System.ReleaseSummary(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(summary)
			}
			version := stringValue(summary, "version")
			if version == "" {
				fmt.Println("No software version could be determined.")
			} else {
				fmt.Printf("SANtricity %s (source: %s)\n", version, stringValue(summary, "source"))
			}
			if errs, ok := summary["errors"].([]any); ok && len(errs) > 0 {
				for _, entry := range errs {
					fmt.Printf("  warning: %v\n", entry)
				}
			}
			return nil
		},
	}
}
