package converter

import (
	"path/filepath"
	"strings"
)

// Default suffix allow-lists. Classification is by suffix only; a renamed
// file with a matching suffix is accepted regardless of content.
var (
	DefaultImageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tiff", ".tif"}
	DefaultVideoExtensions = []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".mpeg", ".mpg"}
)

// Classifier decides whether a path is an eligible input for a media kind.
type Classifier struct {
	imageExts map[string]bool
	videoExts map[string]bool
}

// NewClassifier builds a classifier from suffix allow-lists. Empty lists
// fall back to the defaults. Suffixes are matched case-insensitively and
// include the leading dot.
func NewClassifier(imageExts, videoExts []string) *Classifier {
	if len(imageExts) == 0 {
		imageExts = DefaultImageExtensions
	}
	if len(videoExts) == 0 {
		videoExts = DefaultVideoExtensions
	}
	return &Classifier{
		imageExts: toExtSet(imageExts),
		videoExts: toExtSet(videoExts),
	}
}

func toExtSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = true
	}
	return set
}

// IsImage reports whether path carries an image suffix from the allow-list.
func (c *Classifier) IsImage(path string) bool {
	return c.imageExts[strings.ToLower(filepath.Ext(path))]
}

// IsVideo reports whether path carries a video suffix from the allow-list.
func (c *Classifier) IsVideo(path string) bool {
	return c.videoExts[strings.ToLower(filepath.Ext(path))]
}

// Classify returns the media kind for path, or false if the suffix matches
// neither allow-list.
func (c *Classifier) Classify(path string) (MediaKind, bool) {
	switch {
	case c.IsImage(path):
		return KindImage, true
	case c.IsVideo(path):
		return KindVideo, true
	default:
		return "", false
	}
}
