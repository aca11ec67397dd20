package testutil

import (
	"showtimer/internal/models"
	"showtimer/internal/providers"
	"sync"
	"time"
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

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// FakeClock is a settable clock for wall-clock dependent tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *FakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	FlushWrites   int
	FlushSkipped  int
	FlushFailures int
	AutoStops     map[string]int
	Stages        map[string]int
	CacheHits     int
	CacheMisses   int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)       {}

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

func (m *MockMetrics) IncFlushWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushWrites++
}

func (m *MockMetrics) IncFlushSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushSkipped++
}

func (m *MockMetrics) IncFlushFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushFailures++
}

func (m *MockMetrics) IncAutoStops(variant string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AutoStops == nil {
		m.AutoStops = make(map[string]int)
	}
	m.AutoStops[variant]++
}

func (m *MockMetrics) AutoStopCount(variant string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AutoStops[variant]
}

func (m *MockMetrics) SetStage(variant string, stage int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stages == nil {
		m.Stages = make(map[string]int)
	}
	m.Stages[variant] = stage
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

// MockCompressor implements persistence.Compressor with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
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

func (m *MockCompressor) Close() {}

// MockStore implements services.SnapshotStore in memory and records every update.
type MockStore struct {
	mu       sync.Mutex
	latest   models.Snapshot
	Updates  []models.PartialSnapshot
	revision uint64
}

func NewMockStore(initial models.Snapshot) *MockStore {
	return &MockStore{latest: initial.Clone()}
}

func (m *MockStore) Update(p models.PartialSnapshot) models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = m.latest.Merge(p)
	m.Updates = append(m.Updates, p)
	m.revision++
	return m.latest.Clone()
}

func (m *MockStore) Latest() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest.Clone()
}

func (m *MockStore) Revision() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revision
}

func (m *MockStore) UpdateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Updates)
}
