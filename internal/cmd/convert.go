package cmd

import (
	"github.com/spf13/cobra"

	"mediapress/core/converter"
)

var (
	convertQuality int
	convertOutput  string
)

var convertCmd = &cobra.Command{
	Use:   "convert [paths...]",
	Short: "Convert images to lossy WebP",
	Long: `Convert the given image files, or every eligible image in the given
directories, to lossy WebP. Output names are deduplicated within the batch;
existing files at an output path are overwritten.

Examples:
  mediapress convert photo.png scan.tiff --output ./webp
  mediapress convert ./holiday-pics --quality 90`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quality := convertQuality
		if !cmd.Flags().Changed("quality") {
			quality = mgr.Config().Conversion.ImageQuality
		}
		if err := converter.ValidateImageQuality(quality); err != nil {
			return err
		}

		outputDir, err := resolveOutputDir(convertOutput)
		if err != nil {
			return err
		}
		return runImageBatch(args, outputDir, quality)
	},
}

func init() {
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", 85, "WebP quality (1-100)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output directory (must exist)")
}
