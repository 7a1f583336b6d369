// Package config defines the router's YAML-backed configuration: which
// hostnames it recognizes, and what to do with a connection for each one.
package config

import (
	mcnet "github.com/seiftnesse/mc-router/common/net"
)

// Config is the top-level configuration document.
type Config struct {
	// DefaultHost is where a connection goes when its hostname doesn't
	// match any VirtualHosts entry. Nil means such connections are closed.
	DefaultHost *mcnet.ServerAddr `yaml:"default_host,omitempty"`
	VirtualHosts []VirtualHost    `yaml:"virtualhosts"`
}

// VirtualHost binds one hostname, matched exactly as the client's
// handshake sent it, to an Action.
type VirtualHost struct {
	Hostname mcnet.Hostname `yaml:"hostname"`
	Action   Action         `yaml:"action"`
}

// Action is what happens to a connection once its hostname resolves to a
// VirtualHost. Exactly one of Forward, Static, or Status/Login should be
// set; GetStatusAction/GetLoginAction collapse whichever shape was
// configured down to a single decision per protocol state.
type Action struct {
	// Forward sends both Status and Login connections to a single
	// backend, replaying the handshake unmodified.
	Forward *mcnet.ServerAddr `yaml:"forward,omitempty"`

	// Static answers both Status and Login in-process, without ever
	// dialing a backend.
	Static *StaticAction `yaml:"static,omitempty"`

	// Status and Login let the two protocol states be configured
	// independently - e.g. answer Status in-process but forward Login to
	// a real server.
	Status *StatusAction `yaml:"status,omitempty"`
	Login  *LoginAction  `yaml:"login,omitempty"`
}

// StatusAction is what a Status-state connection for a hostname does.
type StatusAction struct {
	Forward *mcnet.ServerAddr `yaml:"forward,omitempty"`
	Static  *StaticAction     `yaml:"static,omitempty"`
}

// LoginAction is what a Login-state connection for a hostname does. There
// is no Static "answer login in-process" beyond a kick: a router cannot
// complete authentication, so a static Login action always ends in a
// Disconnect packet carrying StaticAction.KickMessage.
type LoginAction struct {
	Forward *mcnet.ServerAddr `yaml:"forward,omitempty"`
	Static  *StaticAction     `yaml:"static,omitempty"`
}

// StaticAction supplies the fields a fabricated StatusResponse (or Login
// kick message) is built from. Zero values have sensible defaults applied
// by Defaulted.
type StaticAction struct {
	VersionName     string `yaml:"version_name,omitempty"`
	ProtocolVersion *int32 `yaml:"protocol_version,omitempty"`
	CurPlayers      int    `yaml:"cur_players,omitempty"`
	MaxPlayers      int    `yaml:"max_players,omitempty"`
	Description     string `yaml:"description,omitempty"`
	KickMessage     string `yaml:"kick_message,omitempty"`
}

const (
	defaultVersionName = "router"
	defaultMaxPlayers  = 20
	defaultDescription = "A Minecraft Server"
	defaultKickMessage = "Disconnected"
)

// Defaulted returns a copy of s with zero-valued fields filled from
// defaults, and the protocol version to advertise - the client's own
// handshake version when s didn't pin one, so the response never looks
// like a version mismatch.
func (s *StaticAction) Defaulted(clientProtocolVersion int32) StaticAction {
	out := *s
	if out.VersionName == "" {
		out.VersionName = defaultVersionName
	}
	if out.ProtocolVersion == nil {
		v := clientProtocolVersion
		out.ProtocolVersion = &v
	}
	if out.MaxPlayers == 0 {
		out.MaxPlayers = defaultMaxPlayers
	}
	if out.Description == "" {
		out.Description = defaultDescription
	}
	if out.KickMessage == "" {
		out.KickMessage = defaultKickMessage
	}
	return out
}

// GetStatusAction collapses Action down to what a Status-state connection
// should do, in priority order: an explicit Status override first, then
// Static, then Forward. Returns ok=false if none apply.
func (a Action) GetStatusAction() (StatusAction, bool) {
	if a.Status != nil {
		return *a.Status, true
	}
	if a.Static != nil {
		return StatusAction{Static: a.Static}, true
	}
	if a.Forward != nil {
		return StatusAction{Forward: a.Forward}, true
	}
	return StatusAction{}, false
}

// GetLoginAction collapses Action down to what a Login-state connection
// should do, same priority order as GetStatusAction.
func (a Action) GetLoginAction() (LoginAction, bool) {
	if a.Login != nil {
		return *a.Login, true
	}
	if a.Static != nil {
		return LoginAction{Static: a.Static}, true
	}
	if a.Forward != nil {
		return LoginAction{Forward: a.Forward}, true
	}
	return LoginAction{}, false
}
