package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracespace/internal/models"
	"tracespace/internal/structures"
	"tracespace/internal/testutil"
)

type migratorFixture struct {
	conf     *structures.Config
	hot      *HotStore
	warm     *WarmStore
	cold     *ColdStore
	migrator *Migrator
	logger   *testutil.MockLogger
}

func newMigratorFixture(t *testing.T, now time.Time) *migratorFixture {
	t.Helper()
	root := t.TempDir()
	conf := &structures.Config{}
	conf.Storage.HotDir = filepath.Join(root, "hot")
	conf.Storage.WarmDir = filepath.Join(root, "warm")
	conf.Storage.ColdDir = filepath.Join(root, "cold")
	conf.Storage.HotRetentionDays = 30
	conf.Storage.WarmRetentionDays = 730

	logger := &testutil.MockLogger{}
	clock := &testutil.MockClock{NowTime: now}
	compressor, err := NewGzipCompressor()
	require.NoError(t, err)
	t.Cleanup(compressor.Close)

	hot := NewHotStore(conf, clock, logger)
	warm := NewWarmStore(conf, compressor, logger)
	cold := NewColdStore(conf, logger)
	return &migratorFixture{
		conf:     conf,
		hot:      hot,
		warm:     warm,
		cold:     cold,
		migrator: NewMigrator(conf, hot, warm, cold, logger),
		logger:   logger,
	}
}

func (f *migratorFixture) writeHot(t *testing.T, source string, ts time.Time, payload string) {
	t.Helper()
	_, err := f.hot.Write(&models.Snapshot{
		Source:    source,
		Timestamp: ts,
		Payload:   json.RawMessage(payload),
	})
	require.NoError(t, err)
}

func (f *migratorFixture) hotBucketExists(date string) bool {
	_, err := os.Stat(filepath.Join(f.conf.Storage.HotDir, date))
	return err == nil
}

func TestMigrator_MovesAgedBucketsToWarm(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	f.writeHot(t, "feedA", jan.Add(2*time.Hour), `{"n":1}`)
	f.writeHot(t, "feedA", jan.Add(2*time.Hour+30*time.Minute), `{"n":2}`)
	f.writeHot(t, "feedA", jan.Add(3*time.Hour), `{"n":3}`)
	f.writeHot(t, "feedA", mar.Add(9*time.Hour), `{"n":4}`)
	f.writeHot(t, "feedA", mar.Add(10*time.Hour), `{"n":5}`)

	report := f.migrator.RunMigration(now)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 1, report.MigratedBuckets)
	assert.Equal(t, 3, report.MigratedSnapshots)
	assert.Equal(t, 0, report.ColdEligible)

	// The aged bucket is gone from hot, the recent one untouched.
	assert.False(t, f.hotBucketExists("2024-01-01"))
	assert.True(t, f.hotBucketExists("2024-03-01"))

	bundle, err := f.warm.ReadBundle(jan)
	require.NoError(t, err)
	require.Len(t, bundle, 3)
	assert.Equal(t, `{"n":1}`, string(bundle[0].Payload))
	assert.Equal(t, `{"n":3}`, string(bundle[2].Payload))

	// A range query over both tiers sees all five, oldest first.
	reader := NewRangeReader(f.hot, f.warm, f.logger)
	snaps, err := reader.Query("feedA", jan, mar)
	require.NoError(t, err)
	require.Len(t, snaps, 5)
	for i := 1; i < len(snaps); i++ {
		assert.True(t, snaps[i-1].Timestamp.Before(snaps[i].Timestamp))
	}
}

func TestMigrator_RerunChangesNothing(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	f.writeHot(t, "feedA", jan.Add(2*time.Hour), `{"n":1}`)
	f.writeHot(t, "feedA", jan.Add(3*time.Hour), `{"n":2}`)

	first := f.migrator.RunMigration(now)
	require.Empty(t, first.Errors)
	require.Equal(t, 1, first.MigratedBuckets)

	before, err := os.ReadFile(f.warm.BundlePath(jan))
	require.NoError(t, err)

	second := f.migrator.RunMigration(now)
	assert.Empty(t, second.Errors)
	assert.Equal(t, 0, second.MigratedBuckets)
	assert.Equal(t, 0, second.MigratedSnapshots)

	after, err := os.ReadFile(f.warm.BundlePath(jan))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMigrator_RetentionBoundary(t *testing.T) {
	now := time.Date(2024, 3, 15, 23, 59, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	// Exactly hotRetentionDays old migrates, one day younger stays.
	atCutoff := time.Date(2024, 2, 14, 12, 0, 0, 0, time.Local)
	inside := time.Date(2024, 2, 15, 12, 0, 0, 0, time.Local)
	f.writeHot(t, "feedA", atCutoff, `{"n":1}`)
	f.writeHot(t, "feedA", inside, `{"n":2}`)

	report := f.migrator.RunMigration(now)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 1, report.MigratedBuckets)

	assert.False(t, f.hotBucketExists("2024-02-14"))
	assert.True(t, f.hotBucketExists("2024-02-15"))

	bundle, err := f.warm.ReadBundle(atCutoff)
	require.NoError(t, err)
	assert.Len(t, bundle, 1)
}

func TestMigrator_SkipsUnrecognizedDirectories(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	f.writeHot(t, "feedA", time.Date(2024, 1, 1, 2, 0, 0, 0, time.Local), `{"n":1}`)
	junk := filepath.Join(f.conf.Storage.HotDir, "lost+found")
	require.NoError(t, os.Mkdir(junk, 0755))

	report := f.migrator.RunMigration(now)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 1, report.MigratedBuckets)

	// The odd directory is neither migrated nor deleted.
	_, err := os.Stat(junk)
	assert.NoError(t, err)
}

func TestMigrator_CorruptBucketDoesNotBlockOthers(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	good := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	f.writeHot(t, "feedA", good.Add(2*time.Hour), `{"n":1}`)

	badBucket := filepath.Join(f.conf.Storage.HotDir, "2024-01-02")
	require.NoError(t, os.MkdirAll(badBucket, 0755))
	badFile := filepath.Join(badBucket, "feedA_0200.json")
	require.NoError(t, os.WriteFile(badFile, []byte("{broken"), 0644))

	report := f.migrator.RunMigration(now)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Error(), "bucket 2024-01-02")
	assert.Equal(t, 1, report.MigratedBuckets)

	// The failed bucket keeps its files for the next attempt.
	_, err := os.Stat(badFile)
	assert.NoError(t, err)

	bundle, err := f.warm.ReadBundle(good)
	require.NoError(t, err)
	assert.Len(t, bundle, 1)
}

func TestMigrator_MergesWithLeftoverBundle(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	// A crashed run left the bundle written but the hot files in place.
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	first := &models.Snapshot{Source: "feedA", Timestamp: jan.Add(2 * time.Hour), Payload: json.RawMessage(`{"n":1}`)}
	second := &models.Snapshot{Source: "feedA", Timestamp: jan.Add(2*time.Hour + 30*time.Minute), Payload: json.RawMessage(`{"n":2}`)}
	_, err := f.warm.WriteBundle(jan, []*models.Snapshot{first, second})
	require.NoError(t, err)

	// Hot still holds the second snapshot plus one the bundle never saw.
	f.writeHot(t, "feedA", second.Timestamp, `{"n":2}`)
	f.writeHot(t, "feedA", jan.Add(3*time.Hour), `{"n":3}`)

	report := f.migrator.RunMigration(now)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 1, report.MigratedBuckets)

	bundle, err := f.warm.ReadBundle(jan)
	require.NoError(t, err)
	require.Len(t, bundle, 3)

	seen := map[string]bool{}
	for _, snap := range bundle {
		seen[string(snap.Payload)] = true
	}
	assert.True(t, seen[`{"n":1}`] && seen[`{"n":2}`] && seen[`{"n":3}`])
	assert.False(t, f.hotBucketExists("2024-01-01"))
}

func TestMigrator_RemovesEmptyAgedBucket(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	empty := filepath.Join(f.conf.Storage.HotDir, "2024-01-03")
	require.NoError(t, os.MkdirAll(empty, 0755))

	report := f.migrator.RunMigration(now)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 0, report.MigratedBuckets)

	_, err := os.Stat(empty)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(f.warm.BundlePath(time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)))
	assert.True(t, os.IsNotExist(err))
}

func TestMigrator_CountsColdEligibleWithoutMoving(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	ancient := time.Date(2022, 1, 1, 0, 0, 0, 0, time.Local)
	_, err := f.warm.WriteBundle(ancient, []*models.Snapshot{
		{Source: "feedA", Timestamp: ancient.Add(2 * time.Hour), Payload: json.RawMessage(`{"n":1}`)},
	})
	require.NoError(t, err)

	report := f.migrator.RunMigration(now)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 1, report.ColdEligible)

	// The bundle stays put until cold archiving exists.
	_, err = os.Stat(f.warm.BundlePath(ancient))
	assert.NoError(t, err)

	warns := f.logger.LogsByLevel("warn")
	require.NotEmpty(t, warns)
	assert.Contains(t, warns[len(warns)-1].Format, "cold archiving not implemented")
}

func TestMigrator_EmptyTiers(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	f := newMigratorFixture(t, now)

	report := f.migrator.RunMigration(now)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 0, report.MigratedBuckets)
	assert.Equal(t, 0, report.MigratedSnapshots)
	assert.Equal(t, 0, report.ColdEligible)

	// The reserved cold directory is created even on a no-op run.
	info, err := os.Stat(f.conf.Storage.ColdDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
