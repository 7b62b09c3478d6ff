package converter

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Output suffix templates. The template replaces the input's own suffix,
// so "clip.avi" becomes "clip_compressed.mp4".
const (
	ImageSuffix = ".webp"
	VideoSuffix = "_compressed.mp4"
)

// NameResolver hands out collision-free output filenames for one batch.
// Candidates that collide with an already-committed name get "_1", "_2", …
// inserted before the target suffix, so resolution is deterministic given
// insertion order. Not safe for concurrent use; batches are built
// sequentially.
type NameResolver struct {
	suffix    string
	committed map[string]bool
}

// NewNameResolver creates a resolver for one batch's target suffix.
func NewNameResolver(targetSuffix string) *NameResolver {
	return &NameResolver{
		suffix:    targetSuffix,
		committed: make(map[string]bool),
	}
}

// Resolve strips filename's own suffix, appends the target suffix, and
// disambiguates against every name committed so far. The returned name is
// committed before it is returned.
func (nr *NameResolver) Resolve(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	candidate := base + nr.suffix
	for counter := 1; nr.committed[candidate]; counter++ {
		candidate = base + "_" + strconv.Itoa(counter) + nr.suffix
	}

	nr.committed[candidate] = true
	return candidate
}

// Committed returns how many names the resolver has handed out.
func (nr *NameResolver) Committed() int {
	return len(nr.committed)
}

func baseName(path string) string {
	return filepath.Base(path)
}
