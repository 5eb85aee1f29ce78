// Package cmd provides command-line interface for disk image conversion.
// This file contains the convert command.
package cmd

import (
	"fmt"

	"github.com/hansbonini/c1541tools/pkg"
	"github.com/hansbonini/c1541tools/pkg/common"
	"github.com/spf13/cobra"
)

// convertCmd converts a disk image into another container format.
// Formats are picked from the file extensions.
var convertCmd = &cobra.Command{
	Use:   "convert [input_file] [output_file]",
	Short: "Convert between D64, G64 and I64 images",
	Long: `Convert a Commodore 1541 disk image into another format.

The format of each file is taken from its extension (.d64, .g64 or
.i64, in any case). The output file must not exist yet; it is removed
again if the conversion fails.

Flags:
  -v, --verbose    Enable verbose output (show debug messages)
  -r, --report     Save a YAML report of the conversion and its warnings
  -j, --jobs       Number of tracks encoded or decoded in parallel

Examples:
  c1541tools convert game.d64 game.g64
  c1541tools convert -v capture.i64 game.d64
  c1541tools convert --report damaged.yaml damaged.g64 recovered.d64`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := args[1]

		// Enable verbose mode if requested
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return fmt.Errorf("error getting verbose flag: %w", err)
		}
		common.SetVerboseMode(verbose)

		reportFile, err := cmd.Flags().GetString("report")
		if err != nil {
			return fmt.Errorf("error getting report flag: %w", err)
		}

		options := pkg.DefaultConvertOptions()
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return fmt.Errorf("error getting jobs flag: %w", err)
		}
		if jobs > 0 {
			options.Jobs = jobs
		}

		fmt.Printf("Input image: %s\n", inputFile)
		fmt.Printf("Output image: %s\n", outputFile)

		report, err := pkg.NewConverter(options).Convert(inputFile, outputFile)
		if err != nil {
			return fmt.Errorf("failed to convert image: %w", err)
		}

		if reportFile != "" {
			if err := pkg.WriteReport(report, reportFile); err != nil {
				return err
			}
		}

		fmt.Printf("Image converted successfully: %d half-tracks, %d warning(s)\n",
			report.HalfTracks, len(report.Warnings))
		return nil
	},
}

// init registers the convert command and its flags.
func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output (show debug messages)")
	convertCmd.Flags().StringP("report", "r", "", "Save a YAML conversion report to this file")
	convertCmd.Flags().IntP("jobs", "j", 0, "Tracks processed in parallel (default: number of CPUs)")
}
