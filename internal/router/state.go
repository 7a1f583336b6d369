package router

import "fmt"

// State is a connection's position in the handshake state machine. Go has
// no phantom types to enforce this at compile time the way the original
// Rust implementation's type-per-state client did, so it's enforced at
// runtime instead: every transition goes through Session.Advance, which
// rejects anything not reachable from the current state.
type State int

const (
	StateHandshaking State = iota
	StateStatus
	StateLogin
	StateProxy
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateHandshaking:
		return "handshaking"
	case StateStatus:
		return "status"
	case StateLogin:
		return "login"
	case StateProxy:
		return "proxy"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session tracks one connection's progress through the state machine.
type Session struct {
	state State
}

// NewSession starts a session in StateHandshaking.
func NewSession() *Session {
	return &Session{state: StateHandshaking}
}

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// Advance moves the session to next, returning an error if next isn't
// reachable from the current state.
func (s *Session) Advance(next State) error {
	if !allowed(s.state, next) {
		return fmt.Errorf("router: illegal transition %s -> %s", s.state, next)
	}
	s.state = next
	return nil
}

func allowed(from, to State) bool {
	if to == StateClosed {
		return true
	}
	switch from {
	case StateHandshaking:
		return to == StateStatus || to == StateLogin
	case StateStatus, StateLogin:
		return to == StateProxy
	default:
		return false
	}
}
