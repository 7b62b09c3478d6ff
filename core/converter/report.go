package converter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// RunReport is the JSON run summary optionally written next to the
// outputs after a run completes.
type RunReport struct {
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time"`
	Kind            MediaKind    `json:"kind"`
	Tier            Tier         `json:"tier,omitempty"`
	ImageQuality    int          `json:"image_quality,omitempty"`
	OutputDirectory string       `json:"output_directory"`
	TotalFiles      int          `json:"total_files"`
	SucceededFiles  int          `json:"succeeded_files"`
	FailedFiles     int          `json:"failed_files"`
	TotalSizeBefore int64        `json:"total_size_before"`
	TotalSizeAfter  int64        `json:"total_size_after"`
	SpaceSaved      int64        `json:"space_saved"`
	FileDetails     []FileDetail `json:"file_details"`
}

// FileDetail is one item's entry in the report, in batch order. Size
// fields serialize unconditionally so zero-saving video results keep
// their metrics.
type FileDetail struct {
	SourcePath       string  `json:"source_path"`
	OutputPath       string  `json:"output_path,omitempty"`
	InputSize        int64   `json:"input_size"`
	OutputSize       int64   `json:"output_size"`
	CompressionRatio float64 `json:"compression_ratio"`
	Success          bool    `json:"success"`
	Error            string  `json:"error,omitempty"`
}

// BuildReport assembles the report for one finished run. Size aggregates
// cover successful video items only; the image path records no sizes.
func BuildReport(batch *Batch, results BatchResult, start, end time.Time) *RunReport {
	report := &RunReport{
		StartTime:       start,
		EndTime:         end,
		Kind:            batch.Kind,
		Tier:            batch.Tier,
		ImageQuality:    batch.ImageQuality,
		OutputDirectory: batch.OutputDir,
		TotalFiles:      batch.Len(),
		SucceededFiles:  results.Succeeded(),
		FailedFiles:     results.Failed(),
		FileDetails:     make([]FileDetail, 0, batch.Len()),
	}

	for _, item := range batch.Items {
		result := results[item.SourcePath]
		report.FileDetails = append(report.FileDetails, FileDetail{
			SourcePath:       item.SourcePath,
			OutputPath:       result.OutputPath,
			InputSize:        result.InputSize,
			OutputSize:       result.OutputSize,
			CompressionRatio: result.CompressionRatio,
			Success:          result.Success,
			Error:            result.ErrorMessage,
		})
		if result.Success {
			report.TotalSizeBefore += result.InputSize
			report.TotalSizeAfter += result.OutputSize
		}
	}
	report.SpaceSaved = report.TotalSizeBefore - report.TotalSizeAfter

	return report
}

// WriteJSON writes the report into dir with a timestamped filename and
// returns the path.
func (rr *RunReport) WriteJSON(dir string) (string, error) {
	data, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		return "", err
	}

	name := "mediapress_report_" + rr.EndTime.Format("20060102_150405") + ".json"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
