// Package forge recognizes the FML/FML2 marker Forge and NeoForge clients
// append to the handshake hostname so a vanilla proxy in between can tell
// a modded client from a vanilla one without inspecting anything else.
package forge

import "strings"

// Marker identifies which Forge handshake convention, if any, produced a
// hostname.
type Marker int

const (
	// MarkerNone means the hostname carries no Forge suffix.
	MarkerNone Marker = iota
	// MarkerFML1 is the legacy (1.7-1.12) suffix used by FML.
	MarkerFML1
	// MarkerFML2 is the suffix used by FML from 1.13 on.
	MarkerFML2
)

const (
	fml1Suffix = "\x00FML\x00"
	fml2Suffix = "\x00FML2\x00"
)

// Split separates a handshake ServerAddress into its plain hostname and the
// Forge marker it carried, if any.
//
// The router's hostname lookup (see internal/router) intentionally does
// NOT call Split before matching against configured virtualhosts: it
// compares the address exactly as the client sent it, suffix included,
// mirroring the exact-equality hostname match the original implementation
// this was ported from uses. Split exists for callers that want to log or
// report the client's mod loader without affecting routing - see
// DESIGN.md's note on Open Question (i).
func Split(address string) (hostname string, marker Marker) {
	if strings.HasSuffix(address, fml2Suffix) {
		return strings.TrimSuffix(address, fml2Suffix), MarkerFML2
	}
	if strings.HasSuffix(address, fml1Suffix) {
		return strings.TrimSuffix(address, fml1Suffix), MarkerFML1
	}
	return address, MarkerNone
}

// Join reattaches the marker suffix Split would have removed, so a
// diagnostic tool can round-trip a hostname it previously split.
func Join(hostname string, marker Marker) string {
	switch marker {
	case MarkerFML1:
		return hostname + fml1Suffix
	case MarkerFML2:
		return hostname + fml2Suffix
	default:
		return hostname
	}
}

func (m Marker) String() string {
	switch m {
	case MarkerFML1:
		return "FML"
	case MarkerFML2:
		return "FML2"
	default:
		return "none"
	}
}
