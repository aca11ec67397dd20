package persistence

import (
	"showtimer/internal/persistence/interfaces"
	"showtimer/internal/providers"
	"showtimer/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

// Scheduler owns the flush loop of the snapshot store.
type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	store  *Store
	cron   *gron.Cron
	opsMu  sync.Mutex
}

func (s *Scheduler) Init() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if s.cron != nil {
		return
	}
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.store.Flush(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		}
	})

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Snapshot flush loop started, interval %s", interval)
}

func (s *Scheduler) Stop() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

func (s *Scheduler) Restore() error {
	s.store.Load()
	return nil
}

// Persist performs one best-effort flush, used on shutdown.
func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeApp, "Persisting snapshot to file...")
	err := s.store.Flush()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store *Store) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		store:  store,
	}
}
