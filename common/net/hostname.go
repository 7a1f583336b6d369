package net

import (
	"fmt"
	"net"
	"strings"
)

// Hostname is a validated virtualhost name or backend host, kept as a
// distinct type so a config value that failed validation can never reach
// the router's lookup table.
type Hostname string

// ParseHostname validates s as either a dotted-decimal/IPv6 literal or an
// RFC 1123 hostname (letters, digits, hyphens, dot-separated labels, no
// label starting or ending with a hyphen).
func ParseHostname(s string) (Hostname, error) {
	if s == "" {
		return "", fmt.Errorf("hostname is empty")
	}
	if net.ParseIP(s) != nil {
		return Hostname(s), nil
	}
	if !isValidDNSName(s) {
		return "", fmt.Errorf("invalid hostname: %q", s)
	}
	return Hostname(s), nil
}

func isValidDNSName(s string) bool {
	if len(s) > 253 {
		return false
	}
	labels := strings.Split(s, ".")
	for _, label := range labels {
		if !isValidDNSLabel(label) {
			return false
		}
	}
	return true
}

func isValidDNSLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

func (h Hostname) String() string { return string(h) }
