package persistence

import (
	"fmt"
	"showtimer/internal/models"
	"showtimer/internal/providers"
	"showtimer/internal/structures"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Store holds the latest snapshot in memory and writes it durably at most once
// per flush. Updates between flushes coalesce: only the newest snapshot is written.
type Store struct {
	mu          sync.Mutex
	latest      models.Snapshot
	pending     *models.Snapshot
	ready       atomic.Bool
	inflight    atomic.Bool
	revision    atomic.Uint64
	path        string
	fileManager *FileManager
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
}

func NewStore(conf *structures.Config, fileManager *FileManager, logger providers.Logger, metrics providers.MetricsProviderInterface) *Store {
	return &Store{
		latest:      models.DefaultSnapshot(),
		path:        conf.Persistence.FilePath,
		fileManager: fileManager,
		logger:      logger,
		metrics:     metrics,
	}
}

// Load restores the durable snapshot. Missing, unreadable or invalid data
// falls back to the defaults; Load never fails.
func (s *Store) Load() models.Snapshot {
	snapshot := models.DefaultSnapshot()

	loaded, err := s.fileManager.LoadFromFile(s.path)
	switch {
	case err != nil:
		s.logger.Warnf(providers.TypeApp, "Unable to restore snapshot from %s, using defaults: %s", s.path, err)
	case loaded == nil:
		s.logger.Infof(providers.TypeApp, "No snapshot at %s, using defaults", s.path)
	default:
		snapshot = *loaded
		s.logger.Infof(providers.TypeApp, "Restored snapshot from %s", s.path)
	}

	s.mu.Lock()
	s.latest = snapshot.Clone()
	s.pending = nil
	s.mu.Unlock()

	s.revision.Inc()
	s.ready.Store(true)
	return snapshot
}

// Update merges p into the latest snapshot and marks it for the next flush.
func (s *Store) Update(p models.PartialSnapshot) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = s.latest.Merge(p)
	pending := s.latest.Clone()
	s.pending = &pending
	s.revision.Inc()
	return s.latest.Clone()
}

func (s *Store) Latest() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest.Clone()
}

// Flush writes the pending snapshot if there is one. A flush that finds a
// previous write still in flight is skipped; the next one picks up the latest state.
func (s *Store) Flush() error {
	if !s.inflight.CompareAndSwap(false, true) {
		s.metrics.IncFlushSkipped()
		return nil
	}
	defer s.inflight.Store(false)

	s.mu.Lock()
	snapshot := s.pending
	s.pending = nil
	s.mu.Unlock()

	if snapshot == nil {
		return nil
	}

	start := time.Now()
	err := s.fileManager.SaveToFile(s.path, *snapshot)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.metrics.IncFlushFailures()
		s.mu.Lock()
		if s.pending == nil {
			s.pending = snapshot
		}
		s.mu.Unlock()
		return fmt.Errorf("persist snapshot to %s: %w", s.path, err)
	}

	s.metrics.IncFlushWrites()
	return nil
}

func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Ready reports whether the initial Load has completed.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// Revision changes on every Load and Update.
func (s *Store) Revision() uint64 {
	return s.revision.Load()
}

// Close releases the compressor. The store must not be flushed afterwards.
func (s *Store) Close() {
	s.fileManager.Close()
}

func (s *Store) Path() string {
	return s.path
}
