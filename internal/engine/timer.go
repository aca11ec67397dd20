package engine

import (
	"sync"
	"time"

	"showtimer/internal/models"
)

type Control string

const (
	ControlStart   Control = "start"
	ControlPause   Control = "pause"
	ControlReset   Control = "reset"
	ControlAddTime Control = "addTime"
)

type TimerOptions struct {
	RefreshInterval time.Duration
	// OnTick receives every refreshed observation of a running timer.
	OnTick func(d models.Duration, stage models.Stage)
	// OnAutoStop fires after the timer stopped itself at the display cap.
	OnAutoStop func()
}

// Timer is the run-state machine shared by the count-up and count-down variants.
// Transitions that are illegal in the current state are no-ops and report false.
type Timer struct {
	mu         sync.Mutex
	clock      Clock
	direction  Direction
	source     *Source
	ticker     *Ticker
	state      models.RunState
	baseline   models.Duration
	thresholds models.Thresholds
	onTick     func(models.Duration, models.Stage)
	onAutoStop func()
}

func NewTimer(clock Clock, direction Direction, opts TimerOptions) *Timer {
	return &Timer{
		clock:      clock,
		direction:  direction,
		source:     NewSource(clock, direction),
		ticker:     NewTicker(opts.RefreshInterval),
		state:      models.Stopped(),
		baseline:   models.NullDuration,
		onTick:     opts.OnTick,
		onAutoStop: opts.OnAutoStop,
	}
}

// Configure sets the baseline shown while stopped and the stage thresholds.
func (t *Timer) Configure(baseline models.Duration, thresholds models.Thresholds) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.baseline = baseline
	t.thresholds = thresholds
}

// Restore adopts a persisted run state and resumes refreshing if it is running.
// A running state already past the display cap is stopped; Restore reports that case.
func (t *Timer) Restore(state models.RunState) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if state.Validate() != nil {
		state = models.Stopped()
	}
	t.state = state.Clone()
	if !t.state.IsRunning() {
		t.ticker.Stop()
		return false
	}
	if t.source.Observe(t.state, t.baseline).ExceedsCap() {
		t.state = models.Stopped()
		t.ticker.Stop()
		return true
	}
	t.ticker.Start(t.Refresh)
	return false
}

func (t *Timer) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	var ref time.Time

	switch t.state.Type {
	case models.StateStopped:
		if t.direction == CountDown {
			if !t.baseline.Positive() {
				return false
			}
			ref = now.Add(seconds(t.baseline.Value))
		} else {
			ref = now
		}
	case models.StatePaused:
		frozen, _ := t.state.Frozen()
		if t.direction == CountDown {
			ref = now.Add(seconds(frozen))
		} else {
			ref = now.Add(-seconds(frozen))
		}
	default:
		return false
	}

	t.state = models.Running(ref)
	t.ticker.Start(t.Refresh)
	return true
}

func (t *Timer) Pause() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.IsRunning() {
		return false
	}
	d := t.source.Observe(t.state, t.baseline)
	t.state = models.Paused(d.Value)
	t.ticker.Stop()
	return true
}

// Reset returns to stopped from any state. It reports whether the state changed.
func (t *Timer) Reset() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ticker.Stop()
	if t.state.IsStopped() {
		return false
	}
	t.state = models.Stopped()
	return true
}

// AddTime moves a running timer's displayed duration by n seconds.
// Shifts larger than the display cap are refused.
func (t *Timer) AddTime(n int64) bool {
	if n > models.MaxDisplaySeconds || n < -models.MaxDisplaySeconds {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ref, ok := t.state.Reference()
	if !ok {
		return false
	}
	if t.direction == CountDown {
		ref = ref.Add(seconds(n))
	} else {
		ref = ref.Add(-seconds(n))
	}
	t.state = models.Running(ref)
	return true
}

// Refresh re-observes a running timer and stops it once |duration| reaches the display cap.
func (t *Timer) Refresh() {
	t.mu.Lock()
	if !t.state.IsRunning() {
		t.mu.Unlock()
		return
	}
	d := t.source.Observe(t.state, t.baseline)
	stopped := false
	if d.ExceedsCap() {
		t.state = models.Stopped()
		t.ticker.Stop()
		stopped = true
		d = t.baseline
	}
	stage := models.Classify(d, t.thresholds, t.direction.Mode())
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(d, stage)
	}
	if stopped && t.onAutoStop != nil {
		t.onAutoStop()
	}
}

func (t *Timer) Observe() models.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.source.Observe(t.state, t.baseline)
}

func (t *Timer) Stage() models.Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.Classify(t.source.Observe(t.state, t.baseline), t.thresholds, t.direction.Mode())
}

func (t *Timer) State() models.RunState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Controls lists the transitions that are legal right now.
func (t *Timer) Controls() []Control {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state.Type {
	case models.StateRunning:
		return []Control{ControlPause, ControlReset, ControlAddTime}
	case models.StatePaused:
		return []Control{ControlStart, ControlReset}
	default:
		if t.direction == CountUp || t.baseline.Positive() {
			return []Control{ControlStart}
		}
		return nil
	}
}

func (t *Timer) Refreshing() bool {
	return t.ticker.Running()
}

// Close stops the refresh ticker. The run state is kept.
func (t *Timer) Close() {
	t.ticker.Stop()
}

func seconds(n int64) time.Duration {
	return time.Duration(n) * time.Second
}
