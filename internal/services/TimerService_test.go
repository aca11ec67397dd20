package services

import (
	"showtimer/internal/engine"
	"showtimer/internal/models"
	"showtimer/internal/structures"
	"showtimer/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

type serviceFixture struct {
	service *TimerService
	clock   *testutil.FakeClock
	store   *testutil.MockStore
	metrics *testutil.MockMetrics
	logger  *testutil.MockLogger
}

func newServiceFixture(t *testing.T, snapshot models.Snapshot) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		clock:   testutil.NewFakeClock(epoch),
		store:   testutil.NewMockStore(snapshot),
		metrics: &testutil.MockMetrics{},
		logger:  &testutil.MockLogger{},
	}
	conf := &structures.Config{Engine: structures.EngineConfig{RefreshInterval: time.Second, AddTimeSeconds: 60}}
	f.service = NewTimerService(conf, f.clock, f.store, f.logger, f.metrics)
	f.service.Restore(snapshot)
	t.Cleanup(f.service.Close)
	return f
}

func press(t *testing.T, s *TimerService, variant models.Variant, stage models.Stage, actions ...models.KeypadAction) TimerView {
	t.Helper()
	var view TimerView
	var err error
	for _, a := range actions {
		view, err = s.PressKey(variant, stage, a)
		require.NoError(t, err)
	}
	return view
}

func TestTimerService_KeypadEntryReconfiguresBaseline(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())

	press(t, f.service, models.VariantDuration, models.StageOkay, models.KeypadAction{Type: models.ActionClear})
	view := press(t, f.service, models.VariantDuration, models.StageOkay,
		models.Number(5), models.Number(0), models.Number(0))

	assert.Equal(t, models.StageValue{0, 0, 5}, view.Values["okay"])
	assert.Equal(t, models.Seconds(300), view.Duration)
	assert.Equal(t, "05:00", view.Formatted)
	assert.Equal(t, []int{0, 5, 0, 0}, view.Digits)
	assert.Equal(t, models.StateStopped, view.State)
	assert.Equal(t, []engine.Control{engine.ControlStart}, view.Controls)
	assert.Equal(t, models.StageValue{0, 0, 5}, f.store.Latest().Duration.Okay)
}

func TestTimerService_ClearedOkayDisablesStart(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())

	view := press(t, f.service, models.VariantDuration, models.StageOkay, models.KeypadAction{Type: models.ActionClear})

	assert.False(t, view.Duration.Valid)
	assert.Empty(t, view.Controls)
	assert.Equal(t, []models.Key{models.KeyBackspace}, view.DisabledKeys["okay"])

	applied, err := f.service.Start(models.VariantDuration)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestTimerService_AlertIsNormalized(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())

	view := press(t, f.service, models.VariantTimer, models.StageAlert, models.KeypadAction{Type: models.ActionClear})
	assert.Equal(t, models.StageValue{0}, view.Values["alert"])

	view = press(t, f.service, models.VariantClock, models.StageAlert, models.KeypadAction{Type: models.ActionClear})
	assert.Empty(t, view.Values["alert"])
}

func TestTimerService_PressKeyErrors(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())

	_, err := f.service.PressKey("stopwatch", models.StageAlert, models.Number(1))
	assert.ErrorIs(t, err, models.ErrUnknownVariant)

	_, err = f.service.PressKey(models.VariantTimer, models.StageOkay, models.Number(1))
	assert.ErrorIs(t, err, models.ErrUnknownStage)

	_, err = f.service.PressKey(models.VariantTimer, models.StageAlert, models.Number(12))
	assert.ErrorIs(t, err, models.ErrInvalidAction)

	_, err = f.service.PressKey(models.VariantTimer, models.StageAlert, models.KeypadAction{Type: "triple-zero"})
	assert.ErrorIs(t, err, models.ErrInvalidAction)

	assert.Equal(t, 0, f.store.UpdateCount())
}

func TestTimerService_CountDownLifecycle(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())
	d := models.VariantDuration

	applied, err := f.service.Start(d)
	require.NoError(t, err)
	require.True(t, applied)
	assert.True(t, f.store.Latest().Duration.State.IsRunning())

	f.clock.Advance(10 * time.Second)
	view, err := f.service.View(d)
	require.NoError(t, err)
	assert.Equal(t, models.Seconds(290), view.Duration)
	assert.Equal(t, models.StageOkay, view.Stage)
	assert.Equal(t, []engine.Control{engine.ControlPause, engine.ControlReset, engine.ControlAddTime}, view.Controls)

	applied, err = f.service.Pause(d)
	require.NoError(t, err)
	require.True(t, applied)
	frozen, ok := f.store.Latest().Duration.State.Frozen()
	require.True(t, ok)
	assert.Equal(t, int64(290), frozen)

	f.clock.Advance(100 * time.Second)
	applied, err = f.service.Start(d)
	require.NoError(t, err)
	require.True(t, applied)
	view, _ = f.service.View(d)
	assert.Equal(t, models.Seconds(290), view.Duration)

	applied, err = f.service.AddTime(d, 60)
	require.NoError(t, err)
	require.True(t, applied)
	view, _ = f.service.View(d)
	assert.Equal(t, models.Seconds(350), view.Duration)

	applied, err = f.service.Reset(d)
	require.NoError(t, err)
	require.True(t, applied)
	view, _ = f.service.View(d)
	assert.Equal(t, models.Seconds(300), view.Duration)
	assert.True(t, f.store.Latest().Duration.State.IsStopped())
}

func TestTimerService_IllegalTransitionsDoNotPersist(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())

	applied, err := f.service.Pause(models.VariantDuration)
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = f.service.AddTime(models.VariantTimer, 60)
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = f.service.Reset(models.VariantTimer)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Equal(t, 0, f.store.UpdateCount())
}

func TestTimerService_ClockHasNoTransitions(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())

	applied, err := f.service.Start(models.VariantClock)
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = f.service.Start("stopwatch")
	assert.ErrorIs(t, err, models.ErrUnknownVariant)
}

func TestTimerService_CountUpStages(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())
	v := models.VariantTimer

	view, err := f.service.View(v)
	require.NoError(t, err)
	assert.False(t, view.Duration.Valid)
	assert.Equal(t, []engine.Control{engine.ControlStart}, view.Controls)

	applied, err := f.service.Start(v)
	require.NoError(t, err)
	require.True(t, applied)

	view, _ = f.service.View(v)
	assert.Equal(t, models.Seconds(0), view.Duration)
	assert.Equal(t, models.StageOkay, view.Stage)

	f.clock.Advance(4 * time.Minute)
	view, _ = f.service.View(v)
	assert.Equal(t, models.StageWarning, view.Stage)

	f.clock.Advance(time.Minute)
	view, _ = f.service.View(v)
	assert.Equal(t, models.StageAlert, view.Stage)
	assert.Equal(t, "05:00", view.Formatted)
}

func TestTimerService_ClockView(t *testing.T) {
	snap := models.DefaultSnapshot()
	snap.Clock.Warning = models.StageValue{0, 0, 0, 0, 9}
	snap.Clock.Alert = models.StageValue{0, 0, 0, 3, 9}
	f := newServiceFixture(t, snap)

	view, err := f.service.View(models.VariantClock)
	require.NoError(t, err)
	assert.Equal(t, models.Seconds(9*3600), view.Duration)
	assert.Equal(t, models.StageWarning, view.Stage)
	assert.Empty(t, view.State)
	assert.Empty(t, view.Controls)
	assert.Empty(t, view.DisabledKeys["warning"])

	f.clock.Advance(30 * time.Minute)
	view, _ = f.service.View(models.VariantClock)
	assert.Equal(t, models.StageAlert, view.Stage)
}

func TestTimerService_RestoreResumesRunningTimer(t *testing.T) {
	snap := models.DefaultSnapshot()
	snap.Duration.State = models.Running(epoch.Add(2 * time.Minute))
	f := newServiceFixture(t, snap)

	view, err := f.service.View(models.VariantDuration)
	require.NoError(t, err)
	assert.Equal(t, models.StateRunning, view.State)
	assert.Equal(t, models.Seconds(120), view.Duration)
	assert.Equal(t, 0, f.store.UpdateCount())
}

func TestTimerService_RestorePastCapStops(t *testing.T) {
	snap := models.DefaultSnapshot()
	snap.Timer.State = models.Running(epoch.Add(-time.Duration(models.MaxDisplaySeconds) * time.Second))
	f := newServiceFixture(t, snap)

	assert.True(t, f.store.Latest().Timer.State.IsStopped())
	assert.Equal(t, 1, f.metrics.AutoStopCount("timer"))
}

func TestTimerService_AutoStopPersists(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())

	applied, err := f.service.Start(models.VariantTimer)
	require.NoError(t, err)
	require.True(t, applied)

	f.clock.Advance(time.Duration(models.MaxDisplaySeconds) * time.Second)
	f.service.timers[models.VariantTimer].Refresh()

	assert.Eventually(t, func() bool {
		return f.store.Latest().Timer.State.IsStopped()
	}, 3*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return f.metrics.AutoStopCount("timer") == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, f.logger.Count("warn"))
}

func TestTimerService_RevisionFollowsStore(t *testing.T) {
	f := newServiceFixture(t, models.DefaultSnapshot())
	before := f.service.Revision()

	press(t, f.service, models.VariantClock, models.StageWarning, models.Number(1))

	assert.Greater(t, f.service.Revision(), before)
}
