package converter

import (
	"math"
	"os"

	"go.uber.org/zap"
)

// VideoProcessor compresses one video item through the external encoder
// at the batch tier's CRF/preset pair.
type VideoProcessor struct {
	adapter *FFmpegAdapter
	preset  VideoPreset
	logger  *zap.Logger
}

// NewVideoProcessor creates a processor bound to an adapter and the
// resolved encoder parameters for the batch's tier.
func NewVideoProcessor(adapter *FFmpegAdapter, preset VideoPreset, logger *zap.Logger) *VideoProcessor {
	return &VideoProcessor{adapter: adapter, preset: preset, logger: logger}
}

// Process transcodes item synchronously and, on success, records input and
// output sizes plus the compression ratio. A negative ratio (output larger
// than input) is a valid, reportable outcome, not an error.
func (vp *VideoProcessor) Process(item *FileItem) ItemResult {
	if err := vp.adapter.Transcode(item.SourcePath, item.OutputPath, vp.preset); err != nil {
		return failedResult(err)
	}

	inputSize, err := fileSize(item.SourcePath)
	if err != nil {
		return failedResult(newConvertError(ErrorTypeIO, "cannot stat "+item.DisplayName, err))
	}
	outputSize, err := fileSize(item.OutputPath)
	if err != nil {
		return failedResult(newConvertError(ErrorTypeIO, "cannot stat "+item.OutputName, err))
	}

	ratio := compressionRatio(inputSize, outputSize)

	vp.logger.Debug("video compressed",
		zap.String("source", item.SourcePath),
		zap.Int64("input_size", inputSize),
		zap.Int64("output_size", outputSize),
		zap.Float64("ratio", ratio))

	return ItemResult{
		Success:          true,
		OutputPath:       item.OutputPath,
		InputSize:        inputSize,
		OutputSize:       outputSize,
		CompressionRatio: ratio,
	}
}

// compressionRatio is the space saved as a percentage of the input size,
// rounded to two decimal places.
func compressionRatio(inputSize, outputSize int64) float64 {
	if inputSize == 0 {
		return 0
	}
	ratio := (1 - float64(outputSize)/float64(inputSize)) * 100
	return math.Round(ratio*100) / 100
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
