package commands

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	santricity "github.com/eseries-community/go-santricity"
)

func newMappingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage volume-to-host mappings",
	}
	cmd.AddCommand(newMappingsListCommand())
	cmd.AddCommand(newMappingsCreateCommand())
	cmd.AddCommand(newMappingsReportCommand())
	return cmd
}

func newMappingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List volume mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			mappings, err := client.Mappings.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(mappings)
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Mapping Ref", "Volume", "Target", "LUN")
			for _, mapping := range mappings {
				_ = table.Append(
					stringValue(mapping, "lunMappingRef", "mappingRef", "id"),
					stringValue(mapping, "mappableObjectName", "volumeRef", "mappableObjectId"),
					stringValue(mapping, "targetId", "mapRef"),
					stringValue(mapping, "lun"),
				)
			}
			return table.Render()
		},
	}
}

func newMappingsCreateCommand() *cobra.Command {
	var (
		volumeRef  string
		host       string
		hostRef    string
		hostGroup  string
		clusterRef string
		lun        int
		perms      int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Map a volume to a host or host group",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			target := santricity.MapTarget{
				Host:       host,
				HostRef:    hostRef,
				HostGroup:  hostGroup,
				ClusterRef: clusterRef,
			}
			if cmd.Flags().Changed("lun") {
				target.LUN = &lun
			}
			if cmd.Flags().Changed("perms") {
				target.Perms = &perms
			}
			mapping, err := client.Mappings.MapVolume(cmd.Context(), volumeRef, target)
			if err != nil {
				return err
			}
			return printJSON(mapping)
		},
	}
	cmd.Flags().StringVar(&volumeRef, "volume-ref", "", "volume reference to map")
	cmd.Flags().StringVar(&host, "host", "", "target host label")
	cmd.Flags().StringVar(&hostRef, "host-ref", "", "target host reference")
	cmd.Flags().StringVar(&hostGroup, "host-group", "", "target host-group label")
	cmd.Flags().StringVar(&clusterRef, "cluster-ref", "", "target host-group reference")
	cmd.Flags().IntVar(&lun, "lun", 0, "LUN number")
	cmd.Flags().IntVar(&perms, "perms", 0, "mapping permissions")
	_ = cmd.MarkFlagRequired("volume-ref")
	return cmd
}

func newMappingsReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show mappings enriched with volume, pool, and host names",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			report, err := client.MappingsReport(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(report)
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Mapping Ref", "Volume", "Capacity (GiB)", "Pool", "RAID", "Target", "LUN")
			for _, row := range report {
				capacity, _ := row.FirstPresent("capacity", "reportedSize", "currentVolumeSize")
				_ = table.Append(
					stringValue(row, "mappingRef"),
					stringValue(row, "mappableObjectName", "volumeRef"),
					gibibytes(capacity),
					stringValue(row, "poolName"),
					stringValue(row, "raidLevel"),
					stringValue(row, "targetLabel", "hostLabel", "targetId"),
					stringValue(row, "lun"),
				)
			}
			return table.Render()
		},
	}
}
