package session

import (
	"sync"
)

// Session derives lifecycle state from the inbound event stream and
// fans events and state changes out to host callbacks.
//
// Callbacks run synchronously on the goroutine that delivers the
// message and must not block indefinitely. The session serializes
// transitions internally; hosts delivering from multiple transport
// goroutines get a consistent state without extra locking.
type Session struct {
	mu    sync.Mutex
	state State

	callbackMu    sync.Mutex
	onEvent       func(Event)
	onStateChange func(State)
	onClassEnded  func()
	onKicked      func(reason string)
}

func New() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) OnEvent(f func(Event)) {
	s.callbackMu.Lock()
	defer s.callbackMu.Unlock()
	s.onEvent = f
}

func (s *Session) OnStateChange(f func(State)) {
	s.callbackMu.Lock()
	defer s.callbackMu.Unlock()
	s.onStateChange = f
}

func (s *Session) OnClassEnded(f func()) {
	s.callbackMu.Lock()
	defer s.callbackMu.Unlock()
	s.onClassEnded = f
}

func (s *Session) OnKicked(f func(reason string)) {
	s.callbackMu.Lock()
	defer s.callbackMu.Unlock()
	s.onKicked = f
}

// Begin marks the session as connecting. It is a no-op unless the
// session is still idle.
func (s *Session) Begin() {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return
	}
	s.state = StateConnecting
	s.mu.Unlock()
	s.notifyStateChange(StateConnecting)
}

// HandleRaw decodes and applies one inbound message from a transport
// surface.
func (s *Session) HandleRaw(data []byte) {
	s.HandleEvent(MapRaw(data))
}

// HandleEvent applies one canonical event: the event callback always
// fires, the state callbacks fire only when the derived state actually
// changed.
func (s *Session) HandleEvent(ev Event) {
	s.callbackMu.Lock()
	onEvent := s.onEvent
	s.callbackMu.Unlock()
	if onEvent != nil {
		onEvent(ev)
	}

	s.mu.Lock()
	next, changed := Next(s.state, ev)
	s.state = next
	s.mu.Unlock()
	if !changed {
		return
	}
	s.notifyStateChange(next)

	switch next {
	case StateEnded:
		s.callbackMu.Lock()
		onClassEnded := s.onClassEnded
		s.callbackMu.Unlock()
		if onClassEnded != nil {
			onClassEnded()
		}
	case StateKicked:
		s.callbackMu.Lock()
		onKicked := s.onKicked
		s.callbackMu.Unlock()
		if onKicked != nil {
			onKicked(ev.Reason)
		}
	}
}

func (s *Session) notifyStateChange(state State) {
	s.callbackMu.Lock()
	onStateChange := s.onStateChange
	s.callbackMu.Unlock()
	if onStateChange != nil {
		onStateChange(state)
	}
}
