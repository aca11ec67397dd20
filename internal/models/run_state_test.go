package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunState_Constructors(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	running := Running(now)
	assert.True(t, running.IsRunning())
	ref, ok := running.Reference()
	require.True(t, ok)
	assert.True(t, ref.Equal(now))
	_, ok = running.Frozen()
	assert.False(t, ok)

	paused := Paused(42)
	assert.True(t, paused.IsPaused())
	frozen, ok := paused.Frozen()
	require.True(t, ok)
	assert.Equal(t, int64(42), frozen)
	_, ok = paused.Reference()
	assert.False(t, ok)

	assert.True(t, Stopped().IsStopped())
}

func TestRunState_Validate(t *testing.T) {
	ms := int64(1)
	assert.NoError(t, Stopped().Validate())
	assert.NoError(t, Running(time.Now()).Validate())
	assert.NoError(t, Paused(-5).Validate())

	assert.ErrorIs(t, RunState{}.Validate(), ErrInvalidState)
	assert.ErrorIs(t, RunState{Type: "finished"}.Validate(), ErrInvalidState)
	assert.ErrorIs(t, RunState{Type: StateRunning}.Validate(), ErrInvalidState)
	assert.ErrorIs(t, RunState{Type: StatePaused}.Validate(), ErrInvalidState)
	assert.ErrorIs(t, RunState{Type: StateRunning, ReferenceInstant: &ms, FrozenDuration: &ms}.Validate(), ErrInvalidState)
	assert.ErrorIs(t, RunState{Type: StateStopped, FrozenDuration: &ms}.Validate(), ErrInvalidState)
}

func TestRunState_JSON(t *testing.T) {
	data, err := json.Marshal(Running(time.UnixMilli(1234)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"running","referenceInstant":1234}`, string(data))

	data, err = json.Marshal(Stopped())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"stopped"}`, string(data))

	var s RunState
	require.NoError(t, json.Unmarshal([]byte(`{"type":"paused","frozenDuration":90}`), &s))
	frozen, ok := s.Frozen()
	require.True(t, ok)
	assert.Equal(t, int64(90), frozen)
}

func TestRunState_CloneIsIndependent(t *testing.T) {
	orig := Paused(10)
	clone := orig.Clone()
	*clone.FrozenDuration = 99
	frozen, _ := orig.Frozen()
	assert.Equal(t, int64(10), frozen)
}
