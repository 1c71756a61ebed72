package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamer1337/go-bootimg/internal/services"
)

var infoVendorPath string

var infoCmd = &cobra.Command{
	Use:   "info [boot-image]",
	Short: "Show header fields and located payloads",
	Long: `Parse a boot image and print its header fields, decoded OS version and
security patch level, and the offset and size of every located payload.

Examples:
  # Inspect a boot image
  go-bootimg info boot.img

  # Inspect a v3/v4 boot image together with its vendor boot image
  go-bootimg info boot.img --vendor vendor_boot.img

  # Machine-readable output
  go-bootimg info boot.img -o json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoVendorPath, "vendor", "", "vendor boot image to merge before display")
}

func runInfo(path string) error {
	svc, err := services.NewImageService(path, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	if infoVendorPath != "" {
		if err := svc.MergeVendor(infoVendorPath, nil); err != nil {
			return err
		}
	}

	info, err := svc.Info()
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Printf("image:           %s\n", info.Path)
	fmt.Printf("header version:  %d\n", info.HeaderVersion)
	fmt.Printf("page size:       %d\n", info.PageSize)
	if info.Name != "" {
		fmt.Printf("name:            %s\n", info.Name)
	}
	fmt.Printf("os version:      %s\n", info.OSVersion)
	fmt.Printf("patch level:     %s\n", info.PatchLevel)
	if info.Cmdline != "" {
		fmt.Printf("cmdline:         %s\n", info.Cmdline)
	}
	if verbose {
		fmt.Printf("kernel addr:     %#x\n", info.KernelAddr)
		fmt.Printf("ramdisk addr:    %#x\n", info.RamdiskAddr)
		fmt.Printf("tags addr:       %#x\n", info.TagsAddr)
		fmt.Printf("dtb addr:        %#x\n", info.DtbAddr)
	}
	fmt.Printf("vendor merged:   %v\n", info.HasVendorBoot)

	if len(info.Payloads) > 0 {
		fmt.Println("\npayloads:")
		for _, p := range info.Payloads {
			fmt.Printf("  %-15s offset %-10d size %d\n", p.Name, p.Offset, p.Size)
		}
	}
	if len(info.RamdiskTable) > 0 {
		fmt.Println("\nvendor ramdisk table:")
		for _, e := range info.RamdiskTable {
			fmt.Printf("  %-32s %-9s offset %-10d size %d\n", e.Name, e.Type, e.Offset, e.Size)
		}
	}
	if info.Bootconfig != "" {
		fmt.Println("\nbootconfig:")
		fmt.Println(info.Bootconfig)
	}
	return nil
}
