package cmd

import (
	"github.com/spf13/cobra"

	"mediapress/core/converter"
	"mediapress/internal/ui"
)

var (
	compressTier   string
	compressOutput string
)

var compressCmd = &cobra.Command{
	Use:   "compress [paths...]",
	Short: "Compress videos to H.264/AAC MP4",
	Long: `Compress the given video files, or every eligible video in the given
directories, to an H.264 MP4 with AAC audio at 128 kbps. The quality tier
picks the encoder's CRF/preset pair:

  high    CRF 18, preset slow
  medium  CRF 23, preset medium
  low     CRF 28, preset fast

The encoder is probed before the run starts; compression is refused when
ffmpeg cannot be resolved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, err := pickTier(cmd.Flags().Changed("tier"))
		if err != nil {
			return err
		}

		outputDir, err := resolveOutputDir(compressOutput)
		if err != nil {
			return err
		}
		return runVideoBatch(args, outputDir, tier)
	},
}

// pickTier resolves the quality tier: the flag when given, an interactive
// menu on a TTY, the config default otherwise.
func pickTier(flagGiven bool) (converter.Tier, error) {
	if flagGiven {
		return converter.ParseTier(compressTier)
	}
	if ui.IsInteractive() {
		return promptForTier()
	}
	return converter.ParseTier(mgr.Config().Conversion.DefaultTier)
}

func init() {
	compressCmd.Flags().StringVarP(&compressTier, "tier", "t", "medium", "quality tier: high, medium, low")
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "", "output directory (must exist)")
}
