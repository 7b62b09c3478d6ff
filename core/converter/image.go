package converter

import (
	"image"
	"image/draw"
	"os"

	// Decoders for the image allow-list. Registration is all we need;
	// image.Decode picks the right one from the stream header.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/chai2010/webp"
	"go.uber.org/zap"
)

// ImageProcessor converts one image item to lossy WebP at a raw 1-100
// quality scalar.
type ImageProcessor struct {
	quality int
	logger  *zap.Logger
}

// NewImageProcessor creates a processor for a batch's image quality.
func NewImageProcessor(quality int, logger *zap.Logger) *ImageProcessor {
	return &ImageProcessor{quality: quality, logger: logger}
}

// Process converts item's source to WebP at item.OutputPath, overwriting
// any existing file there. The returned result carries no size metrics;
// compression accounting is a video-path concern.
func (ip *ImageProcessor) Process(item *FileItem) ItemResult {
	if err := ValidateImageQuality(ip.quality); err != nil {
		return failedResult(newConvertError(ErrorTypeEncode, "invalid quality", err))
	}

	src, err := os.Open(item.SourcePath)
	if err != nil {
		return failedResult(newConvertError(ErrorTypeIO, "cannot open "+item.DisplayName, err))
	}
	defer src.Close()

	img, format, err := image.Decode(src)
	if err != nil {
		return failedResult(newConvertError(ErrorTypeDecode, "cannot decode "+item.DisplayName, err))
	}

	img = normalizeAlpha(img)

	out, err := os.Create(item.OutputPath)
	if err != nil {
		return failedResult(newConvertError(ErrorTypeIO, "cannot create "+item.OutputName, err))
	}

	encodeErr := webp.Encode(out, img, &webp.Options{
		Lossless: false,
		Quality:  float32(ip.quality),
	})
	closeErr := out.Close()

	// A failed item must not leave a truncated output behind, whichever
	// of the two writes broke.
	if encodeErr != nil || closeErr != nil {
		os.Remove(item.OutputPath)
		if encodeErr != nil {
			return failedResult(newConvertError(ErrorTypeEncode, "cannot encode "+item.OutputName, encodeErr))
		}
		return failedResult(newConvertError(ErrorTypeIO, "cannot write "+item.OutputName, closeErr))
	}

	ip.logger.Debug("image converted",
		zap.String("source", item.SourcePath),
		zap.String("format", format),
		zap.String("output", item.OutputPath))

	return ItemResult{Success: true, OutputPath: item.OutputPath}
}

// normalizeAlpha redraws images whose color mode carries an alpha channel,
// or palette images with transparent entries, into a plain NRGBA buffer.
// Encoders otherwise drop transparency or mis-render palette alpha.
func normalizeAlpha(img image.Image) image.Image {
	if !hasAlpha(img) {
		return img
	}

	bounds := img.Bounds()
	normalized := image.NewNRGBA(bounds)
	draw.Draw(normalized, bounds, img, bounds.Min, draw.Src)
	return normalized
}

func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64:
		return true
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a < 0xffff {
				return true
			}
		}
		return false
	default:
		return false
	}
}
