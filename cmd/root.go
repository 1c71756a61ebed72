package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "go-bootimg",
	Short: "Android boot image inspector and extractor",
	Long: `go-bootimg is a read-only command-line tool for inspecting, extracting,
and verifying Android boot.img (header versions 0-4) and vendor_boot.img
(versions 3-4) container images.

Commands:
  info       Show header fields and located payloads
  extract    Extract kernel, ramdisk, dtb, and bootconfig payloads
  verify     Verify the content checksum and boot signature presence`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")
}
