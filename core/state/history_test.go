package state

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"mediapress/core/converter"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return store
}

func sampleRecord(t *testing.T, end time.Time) *RunRecord {
	t.Helper()

	batch, err := converter.BuildVideoBatch(
		converter.NewClassifier(nil, nil),
		[]string{"/in/clip.mp4", "/in/broken.avi"},
		"/out",
		converter.TierMedium,
	)
	if err != nil {
		t.Fatalf("building batch: %v", err)
	}

	results := converter.BatchResult{
		"/in/clip.mp4": {
			Success:          true,
			OutputPath:       "/out/clip_compressed.mp4",
			InputSize:        1000,
			OutputSize:       400,
			CompressionRatio: 60,
		},
		"/in/broken.avi": {
			Success:      false,
			ErrorMessage: "encoder failed",
		},
	}

	return NewRecord(batch, results, end.Add(-time.Minute), end)
}

func TestSaveAndGetRun(t *testing.T) {
	store := openTestStore(t)
	record := sampleRecord(t, time.Now().UTC().Truncate(time.Second))

	if err := store.SaveRun(record); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	loaded, err := store.GetRun(record.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if loaded.Kind != converter.KindVideo || loaded.Tier != converter.TierMedium {
		t.Errorf("parameters lost: kind=%q tier=%q", loaded.Kind, loaded.Tier)
	}
	if loaded.TotalFiles != 2 || loaded.Succeeded != 1 || loaded.Failed != 1 {
		t.Errorf("counts lost: total=%d ok=%d failed=%d", loaded.TotalFiles, loaded.Succeeded, loaded.Failed)
	}
	if len(loaded.Results) != 2 {
		t.Fatalf("results carry %d entries, want 2", len(loaded.Results))
	}
	if got := loaded.Results["/in/clip.mp4"]; !got.Success || got.CompressionRatio != 60 {
		t.Errorf("success entry lost detail: %+v", got)
	}
	if got := loaded.Results["/in/broken.avi"]; got.Success || got.ErrorMessage != "encoder failed" {
		t.Errorf("failure entry lost detail: %+v", got)
	}
}

func TestGetRunUnknownID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetRun("12345"); err == nil {
		t.Error("unknown run ID returned no error")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().UTC()
	for _, offset := range []time.Duration{0, time.Hour, 30 * time.Minute} {
		if err := store.SaveRun(sampleRecord(t, base.Add(offset))); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	records, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].EndTime.After(records[i-1].EndTime) {
			t.Errorf("records not sorted newest first at index %d", i)
		}
	}
}

func TestListRunsEmptyStore(t *testing.T) {
	store := openTestStore(t)
	records, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("empty store listed %d records", len(records))
	}
}
