package commands

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPoolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Manage storage pools",
	}
	cmd.AddCommand(newPoolsListCommand())
	return cmd
}

func newPoolsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List storage pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			pools, err := client.Pools.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(pools)
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Label", "Pool Ref", "RAID", "Capacity (GiB)", "Free (GiB)", "Status")
			for _, pool := range pools {
				capacity, _ := pool.FirstPresent("totalRaidedSpace", "capacity")
				free, _ := pool.FirstPresent("freeSpace", "availableSpace")
				_ = table.Append(
					stringValue(pool, "label", "name"),
					stringValue(pool, "poolRef", "id", "storagePoolId"),
					stringValue(pool, "raidLevel", "type"),
					gibibytes(capacity),
					gibibytes(free),
					stringValue(pool, "status", "state"),
				)
			}
			return table.Render()
		},
	}
}
