package engine

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
)

// Ticker re-evaluates a timer at a fixed cadence while it runs.
// The tick carries no value; it only prompts a fresh observation.
type Ticker struct {
	interval time.Duration
	mu       sync.Mutex
	cron     *gron.Cron
	running  atomic.Bool
}

func NewTicker(interval time.Duration) *Ticker {
	if interval < time.Second {
		interval = time.Second
	}
	return &Ticker{interval: interval}
}

// Start schedules fn every interval. Starting a running ticker does nothing.
func (t *Ticker) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running.Load() {
		return
	}
	t.cron = gron.New()
	t.cron.AddFunc(gron.Every(t.interval), fn)
	t.cron.Start()
	t.running.Store(true)
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running.Load() {
		return
	}
	t.cron.Stop()
	t.cron = nil
	t.running.Store(false)
}

func (t *Ticker) Running() bool {
	return t.running.Load()
}
