package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/structures"
)

// latestScanDays bounds how far back ReadLatest walks. A feed that has been
// silent longer than this reads as absent even if older hot data exists.
const latestScanDays = 7

// HotStore keeps recent snapshots as one plain JSON file each, grouped into
// day-bucket directories named after the snapshot date.
type HotStore struct {
	dir    string
	clock  models.Clock
	logger providers.Logger
}

func NewHotStore(conf *structures.Config, clock models.Clock, logger providers.Logger) *HotStore {
	return &HotStore{
		dir:    conf.Storage.HotDir,
		clock:  clock,
		logger: logger,
	}
}

// Write persists a snapshot into the day bucket of its own timestamp and
// returns the file location. Two snapshots from the same source within the
// same minute share a name; the later write wins.
func (h *HotStore) Write(snap *models.Snapshot) (string, error) {
	bucket := filepath.Join(h.dir, snap.BucketName())
	if err := os.MkdirAll(bucket, 0755); err != nil {
		return "", fmt.Errorf("failed to create bucket %s: %w", snap.BucketName(), err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path := filepath.Join(bucket, snap.FileName())
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ReadLatest returns the newest snapshot for source within the last
// latestScanDays day buckets, or nil when the source has nothing recent.
func (h *HotStore) ReadLatest(source string) (*models.Snapshot, error) {
	day := dayOf(h.clock.Now())
	for i := 0; i < latestScanDays; i++ {
		date := day.AddDate(0, 0, -i)
		files, err := h.BucketFiles(date)
		if err != nil {
			return nil, err
		}
		var latest string
		for _, name := range files {
			if matchesSource(name, source) {
				latest = name
			}
		}
		if latest == "" {
			continue
		}
		return h.ReadFile(date, latest)
	}
	return nil, nil
}

// ReadDay returns all snapshots for source in one day bucket, in
// chronological order. An absent bucket yields an empty result.
func (h *HotStore) ReadDay(date time.Time, source string) ([]*models.Snapshot, error) {
	files, err := h.BucketFiles(date)
	if err != nil {
		return nil, err
	}

	var snaps []*models.Snapshot
	for _, name := range files {
		if !matchesSource(name, source) {
			continue
		}
		snap, err := h.ReadFile(date, name)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// BucketFiles lists the snapshot file names in one day bucket, sorted
// lexically. Within a bucket that order is chronological. A missing bucket
// yields no files and no error.
func (h *HotStore) BucketFiles(date time.Time) ([]string, error) {
	bucket := filepath.Join(h.dir, date.Format(models.DateLayout))
	entries, err := os.ReadDir(bucket)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read bucket %s: %w", bucket, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), models.SnapshotExt) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// ReadFile loads one snapshot file from a day bucket.
func (h *HotStore) ReadFile(date time.Time, name string) (*models.Snapshot, error) {
	path := filepath.Join(h.dir, date.Format(models.DateLayout), name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// RemoveFiles deletes the named files from a day bucket. Files already gone
// are fine; a re-run after a partial delete must not fail on them.
func (h *HotStore) RemoveFiles(date time.Time, names []string) error {
	bucket := filepath.Join(h.dir, date.Format(models.DateLayout))
	for _, name := range names {
		path := filepath.Join(bucket, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove snapshot %s: %w", path, err)
		}
	}
	return nil
}

// RemoveBucketIfEmpty drops a day-bucket directory once nothing is left in
// it. A bucket that picked up new files in the meantime stays.
func (h *HotStore) RemoveBucketIfEmpty(date time.Time) error {
	bucket := filepath.Join(h.dir, date.Format(models.DateLayout))
	entries, err := os.ReadDir(bucket)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read bucket %s: %w", bucket, err)
	}
	if len(entries) > 0 {
		return nil
	}
	return os.Remove(bucket)
}

// Buckets returns the dates of all day buckets in the hot tier, ascending.
func (h *HotStore) Buckets() ([]time.Time, error) {
	return listDayBuckets(h.dir, h.logger)
}

// matchesSource reports whether a file name belongs to source, requiring the
// exact source_HHMM.json shape. A plain prefix check would confuse sources
// like "trace" and "trace_full".
func matchesSource(name, source string) bool {
	rest, ok := strings.CutPrefix(name, source+"_")
	if !ok {
		return false
	}
	rest, ok = strings.CutSuffix(rest, models.SnapshotExt)
	if !ok || len(rest) != 4 {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
