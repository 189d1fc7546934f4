package storage

import (
	"errors"
	"fmt"
	"time"

	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/structures"
)

// MigrationReport sums up one migration run. Errors holds one entry per
// failed bucket; the run itself never aborts on a single bucket.
type MigrationReport struct {
	MigratedBuckets   int
	MigratedSnapshots int
	ColdEligible      int
	Errors            []error
	Duration          time.Duration
}

// Migrator moves aged-out day buckets from the hot tier into warm bundles
// and counts what has aged past the warm tier. Ordering is bundle first,
// delete after: a crash in between leaves data duplicated, never lost, and
// the next run converges.
type Migrator struct {
	conf   *structures.Config
	hot    *HotStore
	warm   *WarmStore
	cold   *ColdStore
	logger providers.Logger
}

func NewMigrator(conf *structures.Config, hot *HotStore, warm *WarmStore, cold *ColdStore, logger providers.Logger) *Migrator {
	return &Migrator{
		conf:   conf,
		hot:    hot,
		warm:   warm,
		cold:   cold,
		logger: logger,
	}
}

// RunMigration migrates every hot bucket at or past the hot retention age,
// judged at day granularity against now. Re-running with the same now is
// safe and changes nothing.
func (m *Migrator) RunMigration(now time.Time) *MigrationReport {
	start := time.Now()
	report := &MigrationReport{}

	day := dayOf(now)
	hotCutoff := day.AddDate(0, 0, -m.conf.Storage.HotRetentionDays)
	warmCutoff := day.AddDate(0, 0, -m.conf.Storage.WarmRetentionDays)

	if err := m.cold.EnsureDir(); err != nil {
		report.Errors = append(report.Errors, err)
	}

	buckets, err := m.hot.Buckets()
	if err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("failed to scan hot tier: %w", err))
	}
	for _, date := range buckets {
		if date.After(hotCutoff) {
			continue
		}
		count, err := m.migrateBucket(date)
		if err != nil {
			m.logger.Errorf(providers.TypeStore, "Migration of bucket %s failed: %s", date.Format(models.DateLayout), err)
			report.Errors = append(report.Errors, fmt.Errorf("bucket %s: %w", date.Format(models.DateLayout), err))
			continue
		}
		if count > 0 {
			report.MigratedBuckets++
			report.MigratedSnapshots += count
		}
	}

	bundles, err := m.warm.Bundles()
	if err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("failed to scan warm tier: %w", err))
	}
	for _, date := range bundles {
		if date.After(warmCutoff) {
			continue
		}
		report.ColdEligible++
		if err := m.cold.Archive(date, m.warm.BundlePath(date)); err != nil {
			if errors.Is(err, ErrNotImplemented) {
				continue
			}
			report.Errors = append(report.Errors, err)
		}
	}
	if report.ColdEligible > 0 {
		m.logger.Warnf(providers.TypeStore, "%d bundles past warm retention, cold archiving not implemented yet", report.ColdEligible)
	}

	report.Duration = time.Since(start)
	return report
}

// migrateBucket bundles one day bucket into the warm tier and removes the
// hot files that made it into the bundle. Returns how many hot snapshots
// were migrated.
func (m *Migrator) migrateBucket(date time.Time) (int, error) {
	files, err := m.hot.BucketFiles(date)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, m.hot.RemoveBucketIfEmpty(date)
	}

	snaps, err := m.readAll(date, files)
	if err != nil {
		return 0, err
	}

	// A bundle may already exist when a previous run crashed between the
	// bundle write and the hot delete. Merge instead of overwriting so the
	// surviving copies win over whatever subset is still in hot.
	existing, err := m.warm.ReadBundle(date)
	if err != nil {
		return 0, err
	}
	merged := mergeSnapshots(existing, snaps)

	if _, err := m.warm.WriteBundle(date, merged); err != nil {
		return 0, err
	}

	// Writes can land in the bucket while the bundle is being built. Scan
	// again and fold in anything new before deleting.
	after, err := m.hot.BucketFiles(date)
	if err != nil {
		return 0, err
	}
	if len(after) != len(files) {
		late, err := m.readAll(date, after)
		if err != nil {
			return 0, err
		}
		merged = mergeSnapshots(merged, late)
		if _, err := m.warm.WriteBundle(date, merged); err != nil {
			return 0, err
		}
		files = after
	}

	if err := m.hot.RemoveFiles(date, files); err != nil {
		return 0, err
	}
	if err := m.hot.RemoveBucketIfEmpty(date); err != nil {
		return 0, err
	}

	m.logger.Infof(providers.TypeStore, "Migrated bucket %s to warm tier (%d snapshots)", date.Format(models.DateLayout), len(files))
	return len(files), nil
}

func (m *Migrator) readAll(date time.Time, names []string) ([]*models.Snapshot, error) {
	snaps := make([]*models.Snapshot, 0, len(names))
	for _, name := range names {
		snap, err := m.hot.ReadFile(date, name)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// mergeSnapshots appends the entries of add that base does not already hold,
// keyed by source and timestamp.
func mergeSnapshots(base, add []*models.Snapshot) []*models.Snapshot {
	if len(base) == 0 {
		return add
	}
	seen := make(map[string]struct{}, len(base))
	merged := make([]*models.Snapshot, 0, len(base)+len(add))
	for _, snap := range base {
		seen[snapshotKey(snap)] = struct{}{}
		merged = append(merged, snap)
	}
	for _, snap := range add {
		if _, ok := seen[snapshotKey(snap)]; ok {
			continue
		}
		merged = append(merged, snap)
	}
	return merged
}

func snapshotKey(snap *models.Snapshot) string {
	return snap.Source + "|" + snap.Timestamp.Format(time.RFC3339Nano)
}
