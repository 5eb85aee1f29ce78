package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/c1541tools/pkg"
	"github.com/hansbonini/c1541tools/pkg/common"
	"github.com/spf13/cobra"
)

// infoCmd prints a YAML summary of a disk image
var infoCmd = &cobra.Command{
	Use:   "info [image_file]",
	Short: "Show the tracks of a disk image",
	Long: `Show the half-tracks of a D64, G64 or I64 image as YAML.

Every full track is decoded, so the summary includes the number of
sectors recovered per track, the disk id and any warning found on the
way.

Example:
  c1541tools info game.g64`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return fmt.Errorf("error getting verbose flag: %w", err)
		}
		common.SetVerboseMode(verbose)

		summary, err := pkg.Inspect(args[0])
		if err != nil {
			return fmt.Errorf("failed to inspect image: %w", err)
		}
		return summary.WriteYAML(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output (show debug messages)")
}
