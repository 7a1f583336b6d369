package forge

import "testing"

func TestSplit(t *testing.T) {
	cases := []struct {
		address  string
		hostname string
		marker   Marker
	}{
		{"play.example.com", "play.example.com", MarkerNone},
		{"play.example.com\x00FML\x00", "play.example.com", MarkerFML1},
		{"play.example.com\x00FML2\x00", "play.example.com", MarkerFML2},
	}
	for _, c := range cases {
		hostname, marker := Split(c.address)
		if hostname != c.hostname || marker != c.marker {
			t.Errorf("Split(%q) = (%q, %v), want (%q, %v)", c.address, hostname, marker, c.hostname, c.marker)
		}
	}
}

func TestJoinRoundTrip(t *testing.T) {
	for _, marker := range []Marker{MarkerNone, MarkerFML1, MarkerFML2} {
		address := Join("play.example.com", marker)
		hostname, got := Split(address)
		if hostname != "play.example.com" || got != marker {
			t.Errorf("round trip marker %v: got (%q, %v)", marker, hostname, got)
		}
	}
}
