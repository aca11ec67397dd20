package engine

import (
	"sync"

	"showtimer/internal/models"
)

// ClockTimer is always live: its duration is the current time of day and its
// stage compares that time against the configured targets.
type ClockTimer struct {
	mu         sync.RWMutex
	clock      Clock
	thresholds models.ClockThresholds
}

func NewClockTimer(clock Clock) *ClockTimer {
	return &ClockTimer{clock: clock}
}

func (c *ClockTimer) Configure(thresholds models.ClockThresholds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thresholds = models.ClockThresholds{
		Warning: thresholds.Warning.Clone(),
		Alert:   thresholds.Alert.Clone(),
	}
}

func (c *ClockTimer) Observe() models.Duration {
	return models.Seconds(models.SecondOfDay(c.clock.Now()))
}

func (c *ClockTimer) Stage() models.Stage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.ClassifyClock(c.clock.Now(), c.thresholds)
}
