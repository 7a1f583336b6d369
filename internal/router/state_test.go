package router

import "testing"

func TestSessionAdvanceHappyPaths(t *testing.T) {
	for _, next := range []State{StateStatus, StateLogin} {
		s := NewSession()
		if err := s.Advance(next); err != nil {
			t.Fatalf("handshaking -> %s: %v", next, err)
		}
		if s.State() != next {
			t.Fatalf("got state %s, want %s", s.State(), next)
		}
		if err := s.Advance(StateProxy); err != nil {
			t.Fatalf("%s -> proxy: %v", next, err)
		}
	}
}

func TestSessionAdvanceRejectsIllegalTransition(t *testing.T) {
	s := NewSession()
	if err := s.Advance(StateProxy); err == nil {
		t.Fatal("expected an error jumping straight from handshaking to proxy")
	}
}

func TestSessionAdvanceToClosedAlwaysAllowed(t *testing.T) {
	for _, from := range []State{StateHandshaking, StateStatus, StateLogin, StateProxy} {
		s := &Session{state: from}
		if err := s.Advance(StateClosed); err != nil {
			t.Fatalf("%s -> closed: %v", from, err)
		}
	}
}
