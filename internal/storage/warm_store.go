package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/storage/interfaces"
	"tracespace/internal/structures"
)

// BundleExt is the extension of a warm bundle: serialized list, compressed.
const BundleExt = models.SnapshotExt + ".gz"

// WarmStore keeps aged-out day buckets as one compressed bundle per date.
type WarmStore struct {
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewWarmStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *WarmStore {
	return &WarmStore{
		dir:        conf.Storage.WarmDir,
		compressor: compressor,
		logger:     logger,
	}
}

// WriteBundle stores all snapshots of one date as a single compressed unit
// and returns the bundle location. An existing bundle for the date is
// replaced, so writing the same content twice is harmless.
func (w *WarmStore) WriteBundle(date time.Time, snaps []*models.Snapshot) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create warm tier directory: %w", err)
	}

	data, err := json.Marshal(snaps)
	if err != nil {
		return "", fmt.Errorf("failed to encode bundle %s: %w", date.Format(models.DateLayout), err)
	}

	compressed, err := w.compressor.Compress(data)
	if err != nil {
		return "", fmt.Errorf("failed to compress bundle %s: %w", date.Format(models.DateLayout), err)
	}

	path := w.BundlePath(date)
	if err := writeFileAtomic(path, compressed); err != nil {
		return "", err
	}
	return path, nil
}

// ReadBundle loads the bundle for one date, or nil when the date has none.
func (w *WarmStore) ReadBundle(date time.Time) ([]*models.Snapshot, error) {
	path := w.BundlePath(date)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read bundle %s: %w", path, err)
	}

	decompressed, err := w.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress bundle %s: %w", path, err)
	}

	var snaps []*models.Snapshot
	if err := json.Unmarshal(decompressed, &snaps); err != nil {
		return nil, fmt.Errorf("failed to decode bundle %s: %w", path, err)
	}
	return snaps, nil
}

// BundlePath returns where the bundle for a date lives.
func (w *WarmStore) BundlePath(date time.Time) string {
	return filepath.Join(w.dir, date.Format(models.DateLayout)+BundleExt)
}

// Bundles returns the dates of all bundles in the warm tier, ascending.
// Files that do not follow the bundle naming are logged and left alone.
func (w *WarmStore) Bundles() ([]time.Time, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read warm tier directory: %w", err)
	}

	var dates []time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), BundleExt)
		if !ok {
			continue
		}
		date, err := parseBucketDate(name)
		if err != nil {
			w.logger.Warnf(providers.TypeStore, "Skipping unrecognized bundle %s", entry.Name())
			continue
		}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (w *WarmStore) Close() {
	w.compressor.Close()
}
