package converter

import (
	"fmt"
	"time"
)

// BuildImageBatch snapshots an ordered image batch: every path must pass
// the classifier's image allow-list, and each gets a collision-free
// ".webp" output name. The returned batch is immutable in membership;
// ownership passes to the runner when a run starts.
func BuildImageBatch(classifier *Classifier, paths []string, outputDir string, quality int) (*Batch, error) {
	if err := ValidateImageQuality(quality); err != nil {
		return nil, err
	}

	resolver := NewNameResolver(ImageSuffix)
	items := make([]*FileItem, 0, len(paths))
	for _, path := range paths {
		if !classifier.IsImage(path) {
			return nil, fmt.Errorf("not a supported image file: %s", path)
		}
		item := NewFileItem(path, resolver.Resolve(baseName(path)), outputDir, KindImage)
		items = append(items, item)
	}

	return &Batch{
		Items:        items,
		OutputDir:    outputDir,
		Kind:         KindImage,
		ImageQuality: quality,
		CreatedAt:    time.Now(),
	}, nil
}

// BuildVideoBatch snapshots an ordered video batch with "_compressed.mp4"
// output names and a single quality tier for every item.
func BuildVideoBatch(classifier *Classifier, paths []string, outputDir string, tier Tier) (*Batch, error) {
	if _, err := PresetFor(tier); err != nil {
		return nil, err
	}

	resolver := NewNameResolver(VideoSuffix)
	items := make([]*FileItem, 0, len(paths))
	for _, path := range paths {
		if !classifier.IsVideo(path) {
			return nil, fmt.Errorf("not a supported video file: %s", path)
		}
		item := NewFileItem(path, resolver.Resolve(baseName(path)), outputDir, KindVideo)
		items = append(items, item)
	}

	return &Batch{
		Items:     items,
		OutputDir: outputDir,
		Kind:      KindVideo,
		Tier:      tier,
		CreatedAt: time.Now(),
	}, nil
}
