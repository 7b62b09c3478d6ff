package converter

import (
	"path/filepath"
	"time"
)

// MediaKind determines which item processor handles a file. It is fixed
// when the FileItem is created and never changes.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// ItemStatus tracks a FileItem through one run. It only moves forward:
// Pending → Processing → Succeeded|Failed.
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusProcessing ItemStatus = "processing"
	StatusSucceeded  ItemStatus = "succeeded"
	StatusFailed     ItemStatus = "failed"
)

// FileItem is one unit of work: a source file plus its resolved output
// target. SourcePath and Kind are immutable after creation; Status is
// owned by the running worker for the duration of the run.
type FileItem struct {
	SourcePath  string
	DisplayName string
	OutputName  string
	OutputPath  string
	Kind        MediaKind
	Status      ItemStatus
}

// NewFileItem builds a pending item for a source path and its resolved
// output name inside outputDir.
func NewFileItem(sourcePath, outputName, outputDir string, kind MediaKind) *FileItem {
	return &FileItem{
		SourcePath:  sourcePath,
		DisplayName: filepath.Base(sourcePath),
		OutputName:  outputName,
		OutputPath:  filepath.Join(outputDir, outputName),
		Kind:        kind,
		Status:      StatusPending,
	}
}

// Batch is an ordered, fixed set of items sharing one output directory and
// one quality setting. Membership is immutable once a run starts; the
// runner owns the items until the completion event fires.
type Batch struct {
	Items        []*FileItem
	OutputDir    string
	Kind         MediaKind
	Tier         Tier // video batches
	ImageQuality int  // image batches, 1-100
	CreatedAt    time.Time
}

// Len returns the number of items in the batch.
func (b *Batch) Len() int {
	return len(b.Items)
}

// ItemResult is the outcome of processing one FileItem. The size metrics
// serialize unconditionally: a 0.00 ratio (output size equals input size)
// is a legitimate video outcome and must stay distinguishable from the
// image path, which records no sizes at all.
type ItemResult struct {
	Success          bool    `json:"success"`
	OutputPath       string  `json:"output_path,omitempty"`
	InputSize        int64   `json:"input_size"`
	OutputSize       int64   `json:"output_size"`
	CompressionRatio float64 `json:"compression_ratio"`
	ErrorMessage     string  `json:"error_message,omitempty"`
}

// BatchResult maps every submitted source path to its result. It is
// produced exactly once per run, after the loop completes, and always
// carries one entry per item in the batch.
type BatchResult map[string]ItemResult

// Succeeded counts the successful entries.
func (br BatchResult) Succeeded() int {
	n := 0
	for _, r := range br {
		if r.Success {
			n++
		}
	}
	return n
}

// Failed counts the failed entries.
func (br BatchResult) Failed() int {
	return len(br) - br.Succeeded()
}
