package services

import (
	"fmt"
	"time"

	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/storage"
)

type SnapshotServiceInterface interface {
	SaveSnapshot(payload []byte, source string) (string, error)
	LatestSnapshot(source string) (*models.Snapshot, error)
	QueryRange(source string, start, end time.Time) ([]*models.Snapshot, error)
	UsageReport() (*models.UsageReport, error)
}

// SnapshotService is the single entry point for snapshot reads and writes.
// It stamps new payloads with the current time and hides the tier layout
// from the callers.
type SnapshotService struct {
	hot    *storage.HotStore
	reader *storage.RangeReader
	usage  *storage.UsageReporter
	clock  models.Clock
	logger providers.Logger
}

func NewSnapshotService(
	hot *storage.HotStore,
	reader *storage.RangeReader,
	usage *storage.UsageReporter,
	clock models.Clock,
	logger providers.Logger,
) SnapshotServiceInterface {
	return &SnapshotService{
		hot:    hot,
		reader: reader,
		usage:  usage,
		clock:  clock,
		logger: logger,
	}
}

// SaveSnapshot wraps a payload in an envelope stamped with the current time
// and writes it to the hot tier. Returns the file location.
func (ss *SnapshotService) SaveSnapshot(payload []byte, source string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("snapshot source must not be empty")
	}

	snap := &models.Snapshot{
		Source:    source,
		Timestamp: ss.clock.Now(),
		Payload:   payload,
	}
	location, err := ss.hot.Write(snap)
	if err != nil {
		return "", err
	}
	ss.logger.Debugf(providers.TypeStore, "Saved snapshot %s to %s", source, location)
	return location, nil
}

// LatestSnapshot returns the most recent hot snapshot for source, or nil
// when the source has nothing recent.
func (ss *SnapshotService) LatestSnapshot(source string) (*models.Snapshot, error) {
	return ss.hot.ReadLatest(source)
}

// QueryRange returns all snapshots for source between two dates inclusive,
// regardless of which tier currently holds them.
func (ss *SnapshotService) QueryRange(source string, start, end time.Time) ([]*models.Snapshot, error) {
	return ss.reader.Query(source, start, end)
}

// UsageReport measures the bytes held by each tier.
func (ss *SnapshotService) UsageReport() (*models.UsageReport, error) {
	return ss.usage.Report()
}
