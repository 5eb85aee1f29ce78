// Package cmd provides command-line interface functionality for c1541tools.
// c1541tools converts Commodore 1541 floppy disk images between the D64,
// G64 and I64 formats.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the c1541tools application.
var rootCmd = &cobra.Command{
	Use:   "c1541tools",
	Short: "Convert and inspect Commodore 1541 disk images",
	Long: `c1541tools - Converter for Commodore 1541 floppy disk images.

Currently supports:
  - D64 sector images (35, 40 and 42 tracks)
  - G64 GCR images with track length and speed tables
  - I64 raw half-track captures

Converting from a GCR format to D64 decodes every track, recovering
what it can from damaged or partially reformatted disks and reporting
the rest as warnings.

Examples:
  c1541tools convert game.g64 game.d64
  c1541tools convert -v --report report.yaml capture.i64 game.d64
  c1541tools convert --jobs 2 game.d64 game.g64
  c1541tools info game.g64

Use 'c1541tools [command] --help' for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
