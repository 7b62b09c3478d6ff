// Package cmd wires the CLI: flag parsing, configuration, logging and the
// interactive menu around the conversion engine.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mediapress/config"
	"mediapress/core/converter"
	"mediapress/internal/logger"
	"mediapress/internal/ui"
)

// The loaded configuration is deliberately not cached in a package
// variable: handlers take a fresh snapshot from mgr.Config() at each
// point of use, so the watch goroutine's reloads stay behind the
// manager's mutex.
var (
	cfgFile string
	verbose bool

	log *zap.Logger
	mgr *config.Manager
)

var rootCmd = &cobra.Command{
	Use:   "mediapress",
	Short: "Batch-convert images to WebP and compress videos",
	Long: `mediapress converts image batches to lossy WebP and compresses video
batches to H.264/AAC MP4 through ffmpeg, one file at a time, with per-item
failure isolation and a full result report per run.`,
	RunE: runInteractive,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetOut(os.Stderr)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.mediapress.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(historyCmd)
}

func initConfig() {
	var err error

	log, err = logger.NewLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	mgr, err = config.NewManager(cfgFile, log)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
}

// runInteractive is the bare "mediapress" entry: a menu over the same
// operations the subcommands expose.
func runInteractive(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return cmd.Help()
	}

	// Interactive sessions are long-lived; pick up config edits without a
	// restart. Handlers read mgr.Config() per use, no callback needed.
	mgr.Watch(nil)

	const (
		actionConvert  = "Convert images to WebP"
		actionCompress = "Compress videos"
		actionHistory  = "Show run history"
		actionDoctor   = "Check environment"
		actionQuit     = "Quit"
	)

	for {
		prompt := promptui.Select{
			Label: "What would you like to do",
			Items: []string{actionConvert, actionCompress, actionHistory, actionDoctor, actionQuit},
		}
		_, action, err := prompt.Run()
		if err != nil {
			return nil // interrupted
		}

		switch action {
		case actionConvert:
			if err := interactiveConvert(); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case actionCompress:
			if err := interactiveCompress(); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case actionHistory:
			if err := showHistory(); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case actionDoctor:
			runDoctor()
		case actionQuit:
			return nil
		}
	}
}

func interactiveConvert() error {
	dir, err := promptForDirectory("Directory with images")
	if err != nil {
		return err
	}
	out, err := promptForDirectory("Output directory")
	if err != nil {
		return err
	}
	return runImageBatch([]string{dir}, out, mgr.Config().Conversion.ImageQuality)
}

func interactiveCompress() error {
	dir, err := promptForDirectory("Directory with videos")
	if err != nil {
		return err
	}
	out, err := promptForDirectory("Output directory")
	if err != nil {
		return err
	}
	tier, err := promptForTier()
	if err != nil {
		return err
	}
	return runVideoBatch([]string{dir}, out, tier)
}

func promptForDirectory(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			info, err := os.Stat(input)
			if err != nil {
				return fmt.Errorf("directory not found")
			}
			if !info.IsDir() {
				return fmt.Errorf("not a directory")
			}
			return nil
		},
	}
	dir, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return filepath.Clean(dir), nil
}

func promptForTier() (converter.Tier, error) {
	prompt := promptui.Select{
		Label: "Quality tier",
		Items: []string{string(converter.TierHigh), string(converter.TierMedium), string(converter.TierLow)},
	}
	_, choice, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return converter.ParseTier(choice)
}
