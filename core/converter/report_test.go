package converter

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func TestBuildReportAggregates(t *testing.T) {
	batch, err := BuildVideoBatch(
		NewClassifier(nil, nil),
		[]string{"/in/a.mp4", "/in/b.mkv", "/in/c.avi"},
		"/out",
		TierLow,
	)
	if err != nil {
		t.Fatalf("building batch: %v", err)
	}

	results := BatchResult{
		"/in/a.mp4": {Success: true, OutputPath: "/out/a_compressed.mp4", InputSize: 1000, OutputSize: 400, CompressionRatio: 60},
		"/in/b.mkv": {Success: false, ErrorMessage: "encoder failed"},
		"/in/c.avi": {Success: true, OutputPath: "/out/c_compressed.mp4", InputSize: 500, OutputSize: 600, CompressionRatio: -20},
	}

	start := time.Now().Add(-time.Minute)
	report := BuildReport(batch, results, start, time.Now())

	if report.TotalFiles != 3 || report.SucceededFiles != 2 || report.FailedFiles != 1 {
		t.Errorf("counts wrong: total=%d ok=%d failed=%d", report.TotalFiles, report.SucceededFiles, report.FailedFiles)
	}
	// Aggregates come from successful items only.
	if report.TotalSizeBefore != 1500 || report.TotalSizeAfter != 1000 || report.SpaceSaved != 500 {
		t.Errorf("size aggregates wrong: before=%d after=%d saved=%d",
			report.TotalSizeBefore, report.TotalSizeAfter, report.SpaceSaved)
	}

	if len(report.FileDetails) != 3 {
		t.Fatalf("got %d file details, want 3", len(report.FileDetails))
	}
	// Details preserve batch order, not map order.
	for i, item := range batch.Items {
		if report.FileDetails[i].SourcePath != item.SourcePath {
			t.Errorf("detail %d out of order: %q", i, report.FileDetails[i].SourcePath)
		}
	}
	if report.FileDetails[1].Success || report.FileDetails[1].Error != "encoder failed" {
		t.Errorf("failed item detail wrong: %+v", report.FileDetails[1])
	}
}

// TestReportKeepsZeroRatioDetail pins the serialized detail entry for a
// video that saved no space.
func TestReportKeepsZeroRatioDetail(t *testing.T) {
	batch, err := BuildVideoBatch(NewClassifier(nil, nil), []string{"/in/flat.mp4"}, "/out", TierMedium)
	if err != nil {
		t.Fatalf("building batch: %v", err)
	}
	results := BatchResult{
		"/in/flat.mp4": {Success: true, OutputPath: "/out/flat_compressed.mp4", InputSize: 500, OutputSize: 500, CompressionRatio: 0},
	}

	report := BuildReport(batch, results, time.Now().Add(-time.Second), time.Now())
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, want := range []string{`"input_size":500`, `"output_size":500`, `"compression_ratio":0`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report detail missing %s", want)
		}
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	batch, err := BuildImageBatch(NewClassifier(nil, nil), []string{"/in/a.png"}, "/out", 85)
	if err != nil {
		t.Fatalf("building batch: %v", err)
	}
	results := BatchResult{"/in/a.png": {Success: true, OutputPath: "/out/a.webp"}}

	report := BuildReport(batch, results, time.Now().Add(-time.Second), time.Now())
	path, err := report.WriteJSON(dir)
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !strings.HasPrefix(baseName(path), "mediapress_report_") || !strings.HasSuffix(path, ".json") {
		t.Errorf("unexpected report filename: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var loaded RunReport
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if loaded.TotalFiles != 1 || loaded.SucceededFiles != 1 {
		t.Errorf("round trip lost counts: %+v", loaded)
	}
	if loaded.ImageQuality != 85 {
		t.Errorf("round trip lost quality: %d", loaded.ImageQuality)
	}
}
