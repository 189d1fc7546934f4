package testutil

import (
	"context"
	"sync"
	"time"

	"tracespace/internal/models"
	"tracespace/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// LogsByLevel returns the recorded entries for one level.
func (m *MockLogger) LogsByLevel(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []LogEntry
	for _, entry := range m.Logs {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// MockClock implements models.Clock with a pinned time.
type MockClock struct {
	NowTime time.Time
}

func (m *MockClock) Now() time.Time {
	if m.NowTime.IsZero() {
		return time.Now()
	}
	return m.NowTime
}

// MockIDGenerator implements models.IDGenerator with a fixed ID.
type MockIDGenerator struct {
	ID string
}

func (m *MockIDGenerator) NewID() string {
	if m.ID == "" {
		return "test-cycle"
	}
	return m.ID
}

// MockSnapshotService implements services.SnapshotServiceInterface.
type MockSnapshotService struct {
	mu         sync.Mutex
	Saved      []SavedSnapshot
	SaveErr    error
	LatestData map[string]*models.Snapshot
	LatestErr  error
	RangeData  []*models.Snapshot
	RangeErr   error
	Usage      *models.UsageReport
	UsageErr   error
}

type SavedSnapshot struct {
	Payload []byte
	Source  string
}

func (m *MockSnapshotService) SaveSnapshot(payload []byte, source string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	m.Saved = append(m.Saved, SavedSnapshot{Payload: payload, Source: source})
	return "/tmp/" + source, nil
}

func (m *MockSnapshotService) LatestSnapshot(source string) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LatestErr != nil {
		return nil, m.LatestErr
	}
	return m.LatestData[source], nil
}

func (m *MockSnapshotService) QueryRange(source string, start, end time.Time) ([]*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RangeErr != nil {
		return nil, m.RangeErr
	}
	return m.RangeData, nil
}

func (m *MockSnapshotService) UsageReport() (*models.UsageReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UsageErr != nil {
		return nil, m.UsageErr
	}
	if m.Usage == nil {
		return &models.UsageReport{}, nil
	}
	return m.Usage, nil
}

// MockPipeline implements interfaces.PipelineInterface.
type MockPipeline struct {
	mu       sync.Mutex
	Calls    int
	CycleErr error
}

func (m *MockPipeline) RunCycle(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.CycleErr
}

func (m *MockPipeline) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                 sync.Mutex
	Requests           int
	CacheHits          int
	CacheMisses        int
	SnapshotsWritten   map[string]int
	CycleDurations     []time.Duration
	MigrationDurations []time.Duration
	MigratedBuckets    int
	TierBytes          map[string]int64
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncSnapshotsWritten(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SnapshotsWritten == nil {
		m.SnapshotsWritten = make(map[string]int)
	}
	m.SnapshotsWritten[source]++
}

func (m *MockMetrics) ObserveCycleDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CycleDurations = append(m.CycleDurations, duration)
}

func (m *MockMetrics) ObserveMigrationDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MigrationDurations = append(m.MigrationDurations, duration)
}

func (m *MockMetrics) AddMigratedBuckets(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MigratedBuckets += count
}

func (m *MockMetrics) SetTierBytes(tier string, bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TierBytes == nil {
		m.TierBytes = make(map[string]int64)
	}
	m.TierBytes[tier] = bytes
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	CloseFn      func()
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	if m.CloseFn != nil {
		m.CloseFn()
	}
}
