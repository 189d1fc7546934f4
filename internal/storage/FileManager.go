package storage

import (
	"fmt"
	"os"
	"sort"
	"time"

	"tracespace/internal/models"
	"tracespace/internal/providers"
)

// writeFileAtomic writes data through a temp file in the same directory and
// renames it into place. Readers either see the previous content or the full
// new content, never a torn write.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// dayOf truncates t to midnight in its own location.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseBucketDate parses a day-bucket name like "2024-01-01".
func parseBucketDate(name string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout, name, time.Local)
}

// listDayBuckets returns the parsed dates of all date-named subdirectories of
// root, sorted ascending. Entries that do not parse as dates are logged and
// left alone; a missing root means no buckets.
func listDayBuckets(root string, logger providers.Logger) ([]time.Time, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tier directory %s: %w", root, err)
	}

	var dates []time.Time
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		date, err := parseBucketDate(entry.Name())
		if err != nil {
			logger.Warnf(providers.TypeStore, "Skipping unrecognized bucket %s in %s", entry.Name(), root)
			continue
		}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
