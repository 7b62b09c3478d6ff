package converter

import "testing"

// TestClassifyBySuffix verifies suffix-only classification with
// case-insensitive matching.
func TestClassifyBySuffix(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		path     string
		wantKind MediaKind
		wantOK   bool
	}{
		{"photo.JPG", KindImage, true},
		{"photo.jpeg", KindImage, true},
		{"scan.TIFF", KindImage, true},
		{"pixelart.bmp", KindImage, true},
		{"anim.gif", KindImage, true},
		{"clip.MKV", KindVideo, true},
		{"movie.mp4", KindVideo, true},
		{"old.mpeg", KindVideo, true},
		{"stream.webm", KindVideo, true},
		{"notes.txt", "", false},
		{"archive.zip", "", false},
		{"noextension", "", false},
		{"/some/dir/nested.PNG", KindImage, true},
	}

	for _, tt := range tests {
		kind, ok := c.Classify(tt.path)
		if ok != tt.wantOK || kind != tt.wantKind {
			t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.path, kind, ok, tt.wantKind, tt.wantOK)
		}
	}
}

// TestClassifyNoContentSniffing confirms a matching suffix is accepted
// regardless of what the file actually contains (there is no file access
// at all).
func TestClassifyNoContentSniffing(t *testing.T) {
	c := NewClassifier(nil, nil)

	if !c.IsImage("/nonexistent/definitely-not-on-disk.png") {
		t.Error("expected suffix match without touching the filesystem")
	}
	if c.IsVideo("/nonexistent/clip.png") {
		t.Error("image suffix must not classify as video")
	}
}

// TestClassifierCustomAllowLists verifies config-supplied lists replace
// the defaults.
func TestClassifierCustomAllowLists(t *testing.T) {
	c := NewClassifier([]string{".heic"}, []string{".ts"})

	if !c.IsImage("shot.HEIC") {
		t.Error("custom image extension not accepted")
	}
	if c.IsImage("photo.jpg") {
		t.Error("default image extension should be replaced by custom list")
	}
	if !c.IsVideo("rec.ts") {
		t.Error("custom video extension not accepted")
	}
}
