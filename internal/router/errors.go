package router

import "errors"

// Sentinel errors the dispatcher can return; logDispatchError uses
// errors.Is against these to decide how loudly to log a connection failure.
var (
	// ErrNoRoute means the handshake's hostname matched no VirtualHosts
	// entry and there is no DefaultHost to fall back to, or that the
	// matched action has nothing to do for a Status-state connection.
	ErrNoRoute = errors.New("router: no route for hostname")

	// ErrUnsupportedNextState means the handshake declared a next_state
	// the router doesn't handle (anything but Status or Login - e.g. the
	// 1.20.5+ Transfer state).
	ErrUnsupportedNextState = errors.New("router: unsupported next state")

	// ErrLoginToStatusOnly means a Login-state connection resolved to a
	// hostname whose action only answers Status, with no Login action
	// and no kick message configured.
	ErrLoginToStatusOnly = errors.New("router: hostname has no login action")
)
