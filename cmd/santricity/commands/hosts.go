package commands

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newHostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "Manage hosts and host groups",
	}
	cmd.AddCommand(newHostsListCommand())
	cmd.AddCommand(newHostsMembershipCommand())
	return cmd
}

func newHostsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hosts defined on the array",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			hosts, err := client.Hosts.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(hosts)
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Label", "Host Ref", "Host Type", "Group Ref")
			for _, host := range hosts {
				_ = table.Append(
					stringValue(host, "label", "hostName", "name"),
					stringValue(host, "hostRef", "id"),
					stringValue(host, "hostTypeIndex", "hostType"),
					stringValue(host, "clusterRef"),
				)
			}
			return table.Render()
		},
	}
}

func newHostsMembershipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "membership",
		Short: "Show which host group each host belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			memberships, err := client.Hosts.Membership(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(memberships)
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Host", "Host Ref", "Group", "In Group")
			for _, row := range memberships {
				inGroup := "No"
				if belongs, ok := row["belongsToGroup"].(bool); ok && belongs {
					inGroup = "Yes"
				}
				_ = table.Append(
					stringValue(row, "hostLabel"),
					stringValue(row, "hostRef"),
					stringValue(row, "hostGroup"),
					inGroup,
				)
			}
			return table.Render()
		},
	}
}
