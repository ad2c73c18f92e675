package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/eseries-community/go-santricity/core"
)

func newVolumesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volumes",
		Short: "Manage volumes",
	}
	cmd.AddCommand(newVolumesListCommand())
	cmd.AddCommand(newVolumesCreateCommand())
	cmd.AddCommand(newVolumesExpandCommand())
	cmd.AddCommand(newVolumesCheckNamesCommand())
	return cmd
}

func newVolumesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List volumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			volumes, err := client.Volumes.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(volumes)
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Volume Ref", "Pool Ref", "Capacity (GiB)", "Status")
			for _, volume := range volumes {
				capacity, _ := volume.FirstPresent("capacity", "reportedSize", "currentVolumeSize")
				_ = table.Append(
					stringValue(volume, "name", "label"),
					stringValue(volume, "volumeRef", "id"),
					stringValue(volume, "volumeGroupRef"),
					gibibytes(capacity),
					stringValue(volume, "status", "state"),
				)
			}
			return table.Render()
		},
	}
}

func newVolumesCreateCommand() *cobra.Command {
	var (
		poolID        string
		name          string
		size          float64
		sizeUnit      string
		raidLevel     string
		blockSize     int
		dataAssurance bool
		requireUnique bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a volume within a storage pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if requireUnique {
				if err := client.Volumes.EnsureUniqueName(cmd.Context(), name); err != nil {
					return err
				}
			}
			payload := core.Params{
				"name":                 name,
				"size":                 size,
				"sizeUnit":             strings.ToLower(sizeUnit),
				"dataAssuranceEnabled": dataAssurance,
			}
			if raidLevel != "" {
				payload["raidLevel"] = raidLevel
			}
			if blockSize > 0 {
				payload["blockSize"] = blockSize
			}
			volume, err := client.Pools.CreateVolume(cmd.Context(), poolID, payload)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(volume)
			}
			fmt.Printf("Created volume %s (%s)\n",
				stringValue(volume, "name", "label"),
				stringValue(volume, "volumeRef", "id"),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&poolID, "pool-id", "", "storage pool reference")
	cmd.Flags().StringVar(&name, "name", "", "volume name")
	cmd.Flags().Float64Var(&size, "size", 0, "volume size in the given unit")
	cmd.Flags().StringVar(&sizeUnit, "size-unit", "gb", "size unit (bytes, b, mb, gb, tb, mib, gib, tib)")
	cmd.Flags().StringVar(&raidLevel, "raid-level", "", "RAID level override")
	cmd.Flags().IntVar(&blockSize, "block-size", 0, "block size override")
	cmd.Flags().BoolVar(&dataAssurance, "data-assurance", false, "enable data assurance")
	cmd.Flags().BoolVar(&requireUnique, "require-unique-name", true,
		"refuse to create when an existing volume already uses this name")
	_ = cmd.MarkFlagRequired("pool-id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newVolumesExpandCommand() *cobra.Command {
	var (
		size float64
		unit string
	)
	cmd := &cobra.Command{
		Use:   "expand <volume-ref>",
		Short: "Grow a volume by the given amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Volumes.Expand(cmd.Context(), args[0], size, unit)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(result)
			}
			fmt.Println("Expansion requested.")
			return nil
		},
	}
	cmd.Flags().Float64Var(&size, "size", 0, "expansion amount in the given unit")
	cmd.Flags().StringVar(&unit, "unit", "bytes", "size unit (bytes, b, mb, gb, tb, mib, gib, tib)")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newVolumesCheckNamesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-names",
		Short: "Report duplicate volume names on the array",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			duplicates, err := client.Volumes.DuplicateNames(cmd.Context())
			if err != nil {
				return err
			}
			if len(duplicates) == 0 {
				fmt.Println("All volume names are unique.")
				return nil
			}
			fmt.Fprintln(os.Stderr, "Duplicate volume names detected.")
			if err := printJSON(duplicates); err != nil {
				return err
			}
			return &core.ValidationError{Message: "duplicate volume names detected"}
		},
	}
}
