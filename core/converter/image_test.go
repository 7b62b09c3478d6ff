package converter

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeTestPNG(t *testing.T, path string, withAlpha bool) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			alpha := uint8(255)
			if withAlpha && x < 4 {
				alpha = 128
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 200, A: alpha})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

func imageItem(t *testing.T, source, outputDir string) *FileItem {
	t.Helper()
	resolver := NewNameResolver(ImageSuffix)
	return NewFileItem(source, resolver.Resolve(filepath.Base(source)), outputDir, KindImage)
}

func TestImageProcessorProducesWebP(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "photo.png")
	writeTestPNG(t, source, false)

	item := imageItem(t, source, dir)
	result := NewImageProcessor(80, zap.NewNop()).Process(item)

	if !result.Success {
		t.Fatalf("conversion failed: %s", result.ErrorMessage)
	}
	if result.OutputPath != item.OutputPath {
		t.Errorf("result OutputPath = %q, want %q", result.OutputPath, item.OutputPath)
	}
	if result.InputSize != 0 || result.OutputSize != 0 || result.CompressionRatio != 0 {
		t.Error("image result carries size metrics")
	}

	data, err := os.ReadFile(item.OutputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WEBP")) {
		t.Error("output is not a WebP container")
	}
}

func TestImageProcessorAlphaSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "overlay.png")
	writeTestPNG(t, source, true)

	result := NewImageProcessor(80, zap.NewNop()).Process(imageItem(t, source, dir))
	if !result.Success {
		t.Fatalf("alpha source failed: %s", result.ErrorMessage)
	}
}

func TestImageProcessorMissingSource(t *testing.T) {
	dir := t.TempDir()
	item := imageItem(t, filepath.Join(dir, "absent.png"), dir)

	result := NewImageProcessor(80, zap.NewNop()).Process(item)
	if result.Success {
		t.Fatal("missing source reported success")
	}
	if result.ErrorMessage == "" {
		t.Error("failure carries no message")
	}
}

func TestImageProcessorCorruptSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(source, []byte("not an image at all"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	result := NewImageProcessor(80, zap.NewNop()).Process(imageItem(t, source, dir))
	if result.Success {
		t.Fatal("corrupt source reported success")
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.webp")); !os.IsNotExist(err) {
		t.Error("failed conversion left an output file behind")
	}
}

// TestImageProcessorFailureLeavesNoOutput sweeps the failure modes and
// verifies none of them leaves a file at the output path.
func TestImageProcessorFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()

	fixtures := map[string][]byte{
		"corrupt.png": []byte("not an image at all"),
		"empty.png":   nil,
		"half.png":    {0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a},
	}
	var items []*FileItem
	for name, content := range fixtures {
		source := filepath.Join(dir, name)
		if err := os.WriteFile(source, content, 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
		items = append(items, imageItem(t, source, dir))
	}
	items = append(items, imageItem(t, filepath.Join(dir, "absent.png"), dir))

	processor := NewImageProcessor(80, zap.NewNop())
	for _, item := range items {
		if result := processor.Process(item); result.Success {
			t.Errorf("%s reported success", item.DisplayName)
		}
		if _, err := os.Stat(item.OutputPath); !os.IsNotExist(err) {
			t.Errorf("%s left an output file at %s", item.DisplayName, item.OutputPath)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".webp" {
			t.Errorf("stray output %s after failed conversions", entry.Name())
		}
	}
}

func TestImageProcessorInvalidQuality(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "photo.png")
	writeTestPNG(t, source, false)

	for _, quality := range []int{0, 101, -5} {
		result := NewImageProcessor(quality, zap.NewNop()).Process(imageItem(t, source, dir))
		if result.Success {
			t.Errorf("quality %d accepted", quality)
		}
	}
}

func TestHasAlpha(t *testing.T) {
	if !hasAlpha(image.NewNRGBA(image.Rect(0, 0, 2, 2))) {
		t.Error("NRGBA buffer not treated as alpha-bearing")
	}
	if hasAlpha(image.NewGray(image.Rect(0, 0, 2, 2))) {
		t.Error("grayscale image treated as alpha-bearing")
	}
	if hasAlpha(image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420)) {
		t.Error("YCbCr image treated as alpha-bearing")
	}

	opaquePalette := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.NRGBA{R: 1, G: 2, B: 3, A: 255},
	})
	if hasAlpha(opaquePalette) {
		t.Error("opaque palette treated as alpha-bearing")
	}

	translucentPalette := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.NRGBA{R: 1, G: 2, B: 3, A: 255},
		color.NRGBA{R: 1, G: 2, B: 3, A: 10},
	})
	if !hasAlpha(translucentPalette) {
		t.Error("translucent palette not treated as alpha-bearing")
	}
}
