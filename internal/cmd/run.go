package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"mediapress/core/converter"
	"mediapress/core/state"
	"mediapress/internal/ui"
)

// collectInputs expands the argument list into concrete source files of
// the wanted kind. Directory arguments are scanned one level deep and
// filtered through the classifier; explicit file arguments are taken
// as-is and validated later by the batch builder.
func collectInputs(args []string, kind converter.MediaKind, classifier *converter.Classifier) ([]string, error) {
	matches := func(path string) bool {
		if kind == converter.KindImage {
			return classifier.IsImage(path)
		}
		return classifier.IsVideo(path)
	}

	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			abs, err := filepath.Abs(arg)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, abs)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read directory %s: %w", arg, err)
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(arg, entry.Name())
			if matches(path) {
				abs, err := filepath.Abs(path)
				if err != nil {
					return nil, err
				}
				found = append(found, abs)
			}
		}
		sort.Strings(found)
		inputs = append(inputs, found...)
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no %s files found in the given paths", kind)
	}
	return inputs, nil
}

// resolveOutputDir picks the output directory (flag, then config, then
// the working directory) and verifies it exists. The engine never creates
// directories; neither does the CLI.
func resolveOutputDir(flagValue string) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = mgr.Config().Output.Directory
	}
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("output directory %s does not exist", dir)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output path %s is not a directory", dir)
	}
	return filepath.Abs(dir)
}

func newClassifier() *converter.Classifier {
	conv := mgr.Config().Conversion
	return converter.NewClassifier(conv.ImageExtensions, conv.VideoExtensions)
}

func runImageBatch(args []string, outputDir string, quality int) error {
	classifier := newClassifier()
	inputs, err := collectInputs(args, converter.KindImage, classifier)
	if err != nil {
		return err
	}

	batch, err := converter.BuildImageBatch(classifier, inputs, outputDir, quality)
	if err != nil {
		return err
	}

	processor := converter.NewImageProcessor(quality, log.Named("image"))
	return executeRun(batch, processor, "Converting images")
}

func runVideoBatch(args []string, outputDir string, tier converter.Tier) error {
	probe := converter.ProbeEncoder(mgr.Config().Tools.FFmpegPath)
	if !probe.Available {
		return fmt.Errorf("cannot compress videos: %s", probe.Diagnostic)
	}

	classifier := newClassifier()
	inputs, err := collectInputs(args, converter.KindVideo, classifier)
	if err != nil {
		return err
	}

	batch, err := converter.BuildVideoBatch(classifier, inputs, outputDir, tier)
	if err != nil {
		return err
	}

	preset, err := converter.PresetFor(tier)
	if err != nil {
		return err
	}

	adapter := converter.NewFFmpegAdapter(probe.Path, log.Named("ffmpeg"))
	processor := converter.NewVideoProcessor(adapter, preset, log.Named("video"))
	return executeRun(batch, processor, "Compressing videos")
}

// executeRun drives one batch to completion: it starts the runner, feeds
// the event stream into the progress display, then renders the summary
// and persists history/report artifacts.
func executeRun(batch *converter.Batch, processor converter.ItemProcessor, title string) error {
	runner, err := converter.NewRunner(log.Named("runner"))
	if err != nil {
		return err
	}
	defer runner.Close()

	start := time.Now()
	events, err := runner.Start(batch, processor)
	if err != nil {
		return err
	}

	bar := ui.NewProgressBar(title)
	var results converter.BatchResult
	for event := range events {
		switch e := event.(type) {
		case converter.ProgressEvent:
			bar.Advance(e.Percent, e.Message)
		case converter.ErrorEvent:
			bar.Fail(e.Message)
		case converter.CompleteEvent:
			results = e.Results
		}
	}
	bar.Finish()
	end := time.Now()

	ui.RenderSummary(batch, results)

	cfg := mgr.Config()
	if cfg.History.Enabled {
		if err := recordRun(batch, results, start, end); err != nil {
			log.Warn("failed to record run history", zap.Error(err))
		}
	}

	if cfg.Output.GenerateReport {
		report := converter.BuildReport(batch, results, start, end)
		if path, err := report.WriteJSON(batch.OutputDir); err != nil {
			log.Warn("failed to write run report", zap.Error(err))
		} else {
			log.Info("run report written", zap.String("path", path))
		}
	}

	return nil
}

func recordRun(batch *converter.Batch, results converter.BatchResult, start, end time.Time) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveRun(state.NewRecord(batch, results, start, end))
}

func openHistoryStore() (*state.Store, error) {
	dbPath := mgr.Config().History.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(home, ".mediapress")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, "history.db")
	}
	return state.NewStore(dbPath, log.Named("history"))
}
