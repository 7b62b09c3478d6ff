// Package state persists completed run records in a local bbolt store so
// past batches can be listed and inspected after the process exits.
package state

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"mediapress/core/converter"
)

const runsBucket = "runs"

// RunRecord is one completed run: its parameters, aggregate counts and the
// full per-item result map.
type RunRecord struct {
	ID           string                          `json:"id"`
	Kind         converter.MediaKind             `json:"kind"`
	Tier         converter.Tier                  `json:"tier,omitempty"`
	ImageQuality int                             `json:"image_quality,omitempty"`
	OutputDir    string                          `json:"output_dir"`
	StartTime    time.Time                       `json:"start_time"`
	EndTime      time.Time                       `json:"end_time"`
	TotalFiles   int                             `json:"total_files"`
	Succeeded    int                             `json:"succeeded"`
	Failed       int                             `json:"failed"`
	Results      map[string]converter.ItemResult `json:"results"`
}

// Store is the bbolt-backed history database.
type Store struct {
	db     *bbolt.DB
	logger *zap.Logger
}

// NewStore opens (or creates) the history database at dbPath.
func NewStore(dbPath string, logger *zap.Logger) (*Store, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("failed to close history database during cleanup", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to initialize runs bucket: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// NewRecord builds a RunRecord from a finished batch and its results. The
// ID is the run's end timestamp in unix nanoseconds, which keeps records
// naturally ordered in the bucket.
func NewRecord(batch *converter.Batch, results converter.BatchResult, start, end time.Time) *RunRecord {
	return &RunRecord{
		ID:           strconv.FormatInt(end.UnixNano(), 10),
		Kind:         batch.Kind,
		Tier:         batch.Tier,
		ImageQuality: batch.ImageQuality,
		OutputDir:    batch.OutputDir,
		StartTime:    start,
		EndTime:      end,
		TotalFiles:   batch.Len(),
		Succeeded:    results.Succeeded(),
		Failed:       results.Failed(),
		Results:      results,
	}
}

// SaveRun persists one run record.
func (s *Store) SaveRun(record *RunRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("runs bucket not found")
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal run record: %w", err)
		}

		return bucket.Put([]byte(record.ID), data)
	})
}

// GetRun loads one run by ID.
func (s *Store) GetRun(id string) (*RunRecord, error) {
	var record *RunRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("runs bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("run not found: %s", id)
		}

		record = &RunRecord{}
		return json.Unmarshal(data, record)
	})

	return record, err
}

// ListRuns returns all recorded runs, newest first.
func (s *Store) ListRuns() ([]*RunRecord, error) {
	var records []*RunRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("runs bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record RunRecord
			if err := json.Unmarshal(v, &record); err != nil {
				s.logger.Warn("skipping unreadable run record", zap.String("key", string(k)), zap.Error(err))
				return nil
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].EndTime.After(records[j].EndTime)
	})
	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
