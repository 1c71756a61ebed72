package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamer1337/go-bootimg/internal/device"
	"github.com/kamer1337/go-bootimg/internal/services"
)

var (
	extractDest       string
	extractVendorPath string
)

var extractCmd = &cobra.Command{
	Use:   "extract [boot-image]",
	Short: "Extract kernel, ramdisk, dtb, and bootconfig payloads",
	Long: `Extract every present payload of a boot image into a directory.

Examples:
  # Extract all payloads next to the image
  go-bootimg extract boot.img --dest ./unpacked

  # Include the vendor boot dtb and bootconfig
  go-bootimg extract boot.img --vendor vendor_boot.img --dest ./unpacked`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExtract(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractDest, "dest", "d", "", "destination directory (default: configured output_dir)")
	extractCmd.Flags().StringVar(&extractVendorPath, "vendor", "", "vendor boot image to merge before extraction")
}

func runExtract(path string) error {
	config, err := device.LoadConfig()
	if err != nil {
		return err
	}
	dest := extractDest
	if dest == "" {
		dest = config.OutputDir
	}

	svc, err := services.NewImageService(path, config)
	if err != nil {
		return err
	}
	defer svc.Close()

	if extractVendorPath != "" {
		if err := svc.MergeVendor(extractVendorPath, config); err != nil {
			return err
		}
	}

	written, err := svc.ExtractAll(dest)
	if err != nil {
		return err
	}
	if !quiet {
		for _, p := range written {
			fmt.Println(p)
		}
	}
	return nil
}
