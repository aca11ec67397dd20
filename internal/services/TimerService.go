package services

import (
	"fmt"
	"showtimer/internal/engine"
	"showtimer/internal/models"
	"showtimer/internal/providers"
	"showtimer/internal/structures"
	"sync"
)

// SnapshotStore is the part of the persistence store the service writes through.
type SnapshotStore interface {
	Update(p models.PartialSnapshot) models.Snapshot
	Latest() models.Snapshot
	Revision() uint64
}

type TimerServiceInterface interface {
	Restore(snapshot models.Snapshot)
	PressKey(variant models.Variant, stage models.Stage, action models.KeypadAction) (TimerView, error)
	Start(variant models.Variant) (bool, error)
	Pause(variant models.Variant) (bool, error)
	Reset(variant models.Variant) (bool, error)
	AddTime(variant models.Variant, seconds int64) (bool, error)
	View(variant models.Variant) (TimerView, error)
	Revision() uint64
	Close()
}

// TimerView is everything the rendering layer needs to draw one variant.
type TimerView struct {
	Variant      models.Variant               `json:"variant"`
	Duration     models.Duration              `json:"duration"`
	Formatted    string                       `json:"formatted"`
	Digits       []int                        `json:"digits"`
	Stage        models.Stage                 `json:"stage"`
	State        models.RunStateType          `json:"state,omitempty"`
	Values       map[string]models.StageValue `json:"values"`
	DisabledKeys map[string][]models.Key      `json:"disabledKeys"`
	Controls     []engine.Control             `json:"controls"`
}

// TimerService composes the keypad codec, the run-state machines and the
// classifier, and is the only writer of the snapshot store.
type TimerService struct {
	mu      sync.Mutex
	store   SnapshotStore
	timers  map[models.Variant]*engine.Timer
	clock   *engine.ClockTimer
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewTimerService(conf *structures.Config, clock engine.Clock, store SnapshotStore, logger providers.Logger, metrics providers.MetricsProviderInterface) *TimerService {
	s := &TimerService{
		store:   store,
		clock:   engine.NewClockTimer(clock),
		logger:  logger,
		metrics: metrics,
	}
	s.timers = map[models.Variant]*engine.Timer{
		models.VariantTimer:    engine.NewTimer(clock, engine.CountUp, s.timerOptions(conf, models.VariantTimer)),
		models.VariantDuration: engine.NewTimer(clock, engine.CountDown, s.timerOptions(conf, models.VariantDuration)),
	}
	return s
}

func (s *TimerService) timerOptions(conf *structures.Config, variant models.Variant) engine.TimerOptions {
	return engine.TimerOptions{
		RefreshInterval: conf.Engine.RefreshInterval,
		OnTick: func(_ models.Duration, stage models.Stage) {
			s.metrics.SetStage(string(variant), int(stage))
		},
		OnAutoStop: func() {
			s.autoStopped(variant)
		},
	}
}

func (s *TimerService) autoStopped(variant models.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Warnf(providers.TypeApp, "Timer %s reached the display limit and was stopped", variant)
	s.persistState(variant)
	s.metrics.IncAutoStops(string(variant))
}

// Restore configures every variant from snapshot and resumes running timers.
func (s *TimerService) Restore(snapshot models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, variant := range models.Variants {
		s.configure(variant, snapshot)
	}

	states := map[models.Variant]models.RunState{
		models.VariantTimer:    snapshot.Timer.State,
		models.VariantDuration: snapshot.Duration.State,
	}
	for variant, state := range states {
		if s.timers[variant].Restore(state) {
			s.logger.Warnf(providers.TypeApp, "Restored timer %s was past the display limit, stopping it", variant)
			s.metrics.IncAutoStops(string(variant))
			s.persistState(variant)
		}
		s.metrics.SetStage(string(variant), int(s.timers[variant].Stage()))
	}
	s.metrics.SetStage(string(models.VariantClock), int(s.clock.Stage()))
}

// configure pushes the variant's thresholds and baseline from snapshot into its machine.
func (s *TimerService) configure(variant models.Variant, snapshot models.Snapshot) {
	switch variant {
	case models.VariantTimer:
		s.timers[variant].Configure(models.NullDuration,
			models.ThresholdsFrom(snapshot.Timer.Warning, snapshot.Timer.Alert))
	case models.VariantDuration:
		s.timers[variant].Configure(models.ToDurationSeconds(snapshot.Duration.Okay),
			models.ThresholdsFrom(snapshot.Duration.Warning, snapshot.Duration.Alert))
	case models.VariantClock:
		s.clock.Configure(models.ClockThresholds{
			Warning: snapshot.Clock.Warning,
			Alert:   snapshot.Clock.Alert,
		})
	}
}

// persistState writes the machine's current run state into the variant's section.
func (s *TimerService) persistState(variant models.Variant) {
	latest := s.store.Latest()
	switch variant {
	case models.VariantTimer:
		section := latest.Timer
		section.State = s.timers[variant].State()
		s.store.Update(models.PartialSnapshot{Timer: &section})
	case models.VariantDuration:
		section := latest.Duration
		section.State = s.timers[variant].State()
		s.store.Update(models.PartialSnapshot{Duration: &section})
	}
}

// PressKey applies a keypad action to one threshold of a variant.
func (s *TimerService) PressKey(variant models.Variant, stage models.Stage, action models.KeypadAction) (TimerView, error) {
	if err := checkVariant(variant); err != nil {
		return TimerView{}, err
	}
	if !variant.HasStage(stage) {
		return TimerView{}, fmt.Errorf("%w: %s has no %s value", models.ErrUnknownStage, variant, stage)
	}
	if err := action.Validate(); err != nil {
		return TimerView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	latest := s.store.Latest()
	prev := stageValue(latest, variant, stage)
	next := models.ApplyAction(prev, action, variant.ValueVariant())
	if stage == models.StageAlert && variant != models.VariantClock {
		next = models.NormalizeAlert(next)
	}

	var partial models.PartialSnapshot
	switch variant {
	case models.VariantTimer:
		section := latest.Timer
		section.State = s.timers[variant].State()
		setTimerValue(&section, stage, next)
		partial.Timer = &section
	case models.VariantDuration:
		section := latest.Duration
		section.State = s.timers[variant].State()
		setDurationValue(&section, stage, next)
		partial.Duration = &section
	case models.VariantClock:
		section := latest.Clock
		setClockValue(&section, stage, next)
		partial.Clock = &section
	}

	updated := s.store.Update(partial)
	s.configure(variant, updated)
	s.logger.Debugf(providers.TypeApp, "Keypad %s on %s.%s: %v -> %v", action.Type, variant, stage, []int(prev), []int(next))

	return s.view(variant, updated), nil
}

func (s *TimerService) Start(variant models.Variant) (bool, error) {
	return s.transition(variant, engine.ControlStart, (*engine.Timer).Start)
}

func (s *TimerService) Pause(variant models.Variant) (bool, error) {
	return s.transition(variant, engine.ControlPause, (*engine.Timer).Pause)
}

func (s *TimerService) Reset(variant models.Variant) (bool, error) {
	return s.transition(variant, engine.ControlReset, (*engine.Timer).Reset)
}

func (s *TimerService) AddTime(variant models.Variant, seconds int64) (bool, error) {
	return s.transition(variant, engine.ControlAddTime, func(t *engine.Timer) bool {
		return t.AddTime(seconds)
	})
}

// transition applies op to the variant's machine and persists the new run state.
// The clock variant has no run state, so every transition on it is illegal.
func (s *TimerService) transition(variant models.Variant, control engine.Control, op func(*engine.Timer) bool) (bool, error) {
	if err := checkVariant(variant); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[variant]
	if !ok {
		return false, nil
	}
	if !op(timer) {
		s.logger.Debugf(providers.TypeApp, "Ignored %s on %s in state %s", control, variant, timer.State().Type)
		return false, nil
	}

	s.persistState(variant)
	s.metrics.SetStage(string(variant), int(timer.Stage()))
	s.logger.Infof(providers.TypeApp, "Timer %s: %s", variant, control)
	return true, nil
}

func (s *TimerService) View(variant models.Variant) (TimerView, error) {
	if err := checkVariant(variant); err != nil {
		return TimerView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(variant, s.store.Latest()), nil
}

func (s *TimerService) view(variant models.Variant, snapshot models.Snapshot) TimerView {
	v := TimerView{
		Variant:      variant,
		Values:       make(map[string]models.StageValue),
		DisabledKeys: make(map[string][]models.Key),
		Controls:     []engine.Control{},
	}

	if timer, ok := s.timers[variant]; ok {
		v.Duration = timer.Observe()
		v.Stage = timer.Stage()
		v.State = timer.State().Type
		if controls := timer.Controls(); controls != nil {
			v.Controls = controls
		}
	} else {
		v.Duration = s.clock.Observe()
		v.Stage = s.clock.Stage()
	}

	v.Formatted = models.FormatDuration(v.Duration)
	v.Digits = models.DisplayDigits(v.Duration)

	for _, stage := range variant.Stages() {
		value := stageValue(snapshot, variant, stage)
		v.Values[stage.String()] = value
		keys := models.DisabledKeys(value, variant.ValueVariant())
		if keys == nil {
			keys = []models.Key{}
		}
		v.DisabledKeys[stage.String()] = keys
	}
	return v
}

// Revision changes whenever the persisted configuration or a run state changes.
func (s *TimerService) Revision() uint64 {
	return s.store.Revision()
}

// Close stops every refresh ticker. Run states stay as they are.
func (s *TimerService) Close() {
	for _, timer := range s.timers {
		timer.Close()
	}
}

func checkVariant(variant models.Variant) error {
	_, err := models.ParseVariant(string(variant))
	return err
}

func stageValue(snapshot models.Snapshot, variant models.Variant, stage models.Stage) models.StageValue {
	switch variant {
	case models.VariantTimer:
		switch stage {
		case models.StageWarning:
			return snapshot.Timer.Warning
		case models.StageAlert:
			return snapshot.Timer.Alert
		}
	case models.VariantDuration:
		switch stage {
		case models.StageOkay:
			return snapshot.Duration.Okay
		case models.StageWarning:
			return snapshot.Duration.Warning
		case models.StageAlert:
			return snapshot.Duration.Alert
		}
	case models.VariantClock:
		switch stage {
		case models.StageWarning:
			return snapshot.Clock.Warning
		case models.StageAlert:
			return snapshot.Clock.Alert
		}
	}
	return nil
}

func setTimerValue(section *models.TimerSection, stage models.Stage, v models.StageValue) {
	if stage == models.StageWarning {
		section.Warning = v
	} else {
		section.Alert = v
	}
}

func setDurationValue(section *models.DurationSection, stage models.Stage, v models.StageValue) {
	switch stage {
	case models.StageOkay:
		section.Okay = v
	case models.StageWarning:
		section.Warning = v
	default:
		section.Alert = v
	}
}

func setClockValue(section *models.ClockSection, stage models.Stage, v models.StageValue) {
	if stage == models.StageWarning {
		section.Warning = v
	} else {
		section.Alert = v
	}
}
