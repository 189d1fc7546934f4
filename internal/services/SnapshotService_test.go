package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracespace/internal/storage"
	"tracespace/internal/structures"
	"tracespace/internal/testutil"
)

func newTestSnapshotService(t *testing.T, now time.Time) SnapshotServiceInterface {
	t.Helper()
	root := t.TempDir()
	conf := &structures.Config{}
	conf.Storage.HotDir = filepath.Join(root, "hot")
	conf.Storage.WarmDir = filepath.Join(root, "warm")
	conf.Storage.ColdDir = filepath.Join(root, "cold")

	logger := &testutil.MockLogger{}
	clock := &testutil.MockClock{NowTime: now}
	compressor, err := storage.NewGzipCompressor()
	require.NoError(t, err)
	t.Cleanup(compressor.Close)

	hot := storage.NewHotStore(conf, clock, logger)
	warm := storage.NewWarmStore(conf, compressor, logger)
	reader := storage.NewRangeReader(hot, warm, logger)
	usage := storage.NewUsageReporter(conf)
	return NewSnapshotService(hot, reader, usage, clock, logger)
}

func TestSnapshotService_SaveStampsCurrentTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	svc := newTestSnapshotService(t, now)

	location, err := svc.SaveSnapshot([]byte(`{"v":1}`), "feedA")
	require.NoError(t, err)
	assert.Contains(t, location, filepath.Join("2024-03-15", "feedA_0930.json"))

	snap, err := svc.LatestSnapshot("feedA")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "feedA", snap.Source)
	assert.True(t, snap.Timestamp.Equal(now))
	assert.Equal(t, `{"v":1}`, string(snap.Payload))
}

func TestSnapshotService_SaveRejectsEmptySource(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	svc := newTestSnapshotService(t, now)

	_, err := svc.SaveSnapshot([]byte(`{"v":1}`), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source must not be empty")
}

func TestSnapshotService_LatestAbsentSource(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	svc := newTestSnapshotService(t, now)

	snap, err := svc.LatestSnapshot("nothing")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotService_QueryRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	svc := newTestSnapshotService(t, now)

	_, err := svc.SaveSnapshot([]byte(`{"v":1}`), "feedA")
	require.NoError(t, err)

	start := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)
	snaps, err := svc.QueryRange("feedA", start, end)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "feedA", snaps[0].Source)
}

func TestSnapshotService_UsageReport(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	svc := newTestSnapshotService(t, now)

	location, err := svc.SaveSnapshot([]byte(`{"v":1}`), "feedA")
	require.NoError(t, err)
	info, err := os.Stat(location)
	require.NoError(t, err)

	report, err := svc.UsageReport()
	require.NoError(t, err)
	assert.Equal(t, info.Size(), report.HotBytes)
	assert.Equal(t, int64(0), report.WarmBytes)
	assert.Equal(t, report.HotBytes, report.TotalBytes)
}
