package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTransitionTable(t *testing.T) {
	cases := []struct {
		cur     State
		ev      EventKind
		want    State
		changed bool
	}{
		{StateConnecting, EventConnected, StateConnected, true},
		{StateConnected, EventReconnecting, StateReconnecting, true},
		{StateReconnecting, EventReconnected, StateConnected, true},
		{StateConnected, EventDisconnected, StateIdle, true},
		{StateConnected, EventClassEnded, StateEnded, true},
		{StateConnected, EventParticipantKicked, StateKicked, true},
		{StateConnecting, EventError, StateError, true},
		{StateConnected, EventParticipantJoined, StateConnected, false},
		{StateConnected, EventQualityChanged, StateConnected, false},
		{StateConnected, EventConnected, StateConnected, false},
	}
	for _, tc := range cases {
		got, changed := Next(tc.cur, Event{Kind: tc.ev})
		assert.Equal(t, tc.want, got, "%s + %s", tc.cur, tc.ev)
		assert.Equal(t, tc.changed, changed, "%s + %s", tc.cur, tc.ev)
	}
}

func TestTerminalStatesAbsorbEverything(t *testing.T) {
	kinds := []EventKind{
		EventConnected, EventDisconnected, EventReconnecting, EventReconnected,
		EventClassEnded, EventParticipantKicked, EventError,
	}
	for _, terminal := range []State{StateEnded, StateKicked, StateError} {
		for _, kind := range kinds {
			got, changed := Next(terminal, Event{Kind: kind})
			assert.Equal(t, terminal, got, "%s + %s", terminal, kind)
			assert.False(t, changed, "%s + %s", terminal, kind)
		}
	}
}

func TestStatePredicates(t *testing.T) {
	assert.True(t, StateConnected.IsActive())
	assert.True(t, StateReconnecting.IsActive())
	assert.False(t, StateIdle.IsActive())

	assert.True(t, StateEnded.IsTerminated())
	assert.True(t, StateKicked.IsTerminated())
	assert.True(t, StateError.IsTerminated())
	assert.False(t, StateConnected.IsTerminated())

	assert.True(t, StateConnecting.IsLoading())
	assert.True(t, StateReconnecting.IsLoading())
	assert.False(t, StateConnected.IsLoading())
}
