package storage

import (
	"time"

	"tracespace/internal/models"
	"tracespace/internal/providers"
)

// RangeReader answers date-range queries across the hot and warm tiers.
type RangeReader struct {
	hot    *HotStore
	warm   *WarmStore
	logger providers.Logger
}

func NewRangeReader(hot *HotStore, warm *WarmStore, logger providers.Logger) *RangeReader {
	return &RangeReader{
		hot:    hot,
		warm:   warm,
		logger: logger,
	}
}

// Query returns every snapshot for source between start and end inclusive,
// walking day by day and merging hot files with warm bundles per date. The
// result is ordered by date; a reversed range is simply empty.
func (r *RangeReader) Query(source string, start, end time.Time) ([]*models.Snapshot, error) {
	first := dayOf(start)
	last := dayOf(end)

	var result []*models.Snapshot
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		hotSnaps, err := r.hot.ReadDay(date, source)
		if err != nil {
			return nil, err
		}
		result = append(result, hotSnaps...)

		bundle, err := r.warm.ReadBundle(date)
		if err != nil {
			return nil, err
		}
		for _, snap := range bundle {
			if snap.Source == source {
				result = append(result, snap)
			}
		}
	}
	return result, nil
}
