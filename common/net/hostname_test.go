package net

import "testing"

func TestParseHostnameValid(t *testing.T) {
	cases := []string{"play.example.com", "a.b.c", "192.168.1.1", "localhost"}
	for _, s := range cases {
		if _, err := ParseHostname(s); err != nil {
			t.Errorf("ParseHostname(%q): unexpected error: %v", s, err)
		}
	}
}

func TestParseHostnameInvalid(t *testing.T) {
	cases := []string{"", "-bad.example.com", "bad-.example.com", "bad_host.example.com", "toolonglabel" + string(make([]byte, 70))}
	for _, s := range cases {
		if _, err := ParseHostname(s); err == nil {
			t.Errorf("ParseHostname(%q): expected an error", s)
		}
	}
}
