package session

// State is the session lifecycle value derived from the event stream.
// Modeled after a string-typed state enum; ended, kicked and error are
// terminal: a fresh connection attempt constructs a new Session rather
// than resurrecting one.
type State string

const (
	StateIdle         State = "idle"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateEnded        State = "ended"
	StateKicked       State = "kicked"
	StateError        State = "error"
)

func (s State) IsActive() bool {
	return s == StateConnected || s == StateReconnecting
}

func (s State) IsTerminated() bool {
	return s == StateEnded || s == StateKicked || s == StateError
}

func (s State) IsLoading() bool {
	return s == StateConnecting || s == StateReconnecting
}

// Next applies one event to the current state and reports whether the
// state actually changed. Repeated identical events are no-ops, so a
// true changed flag always means a distinct value for the host.
func Next(cur State, ev Event) (State, bool) {
	if cur.IsTerminated() {
		return cur, false
	}
	next := cur
	switch ev.Kind {
	case EventConnected, EventReconnected:
		next = StateConnected
	case EventReconnecting:
		next = StateReconnecting
	case EventDisconnected:
		next = StateIdle
	case EventClassEnded:
		next = StateEnded
	case EventParticipantKicked:
		next = StateKicked
	case EventError:
		next = StateError
	}
	return next, next != cur
}
