package net

import "testing"

func TestParseServerAddrDefaultsPort(t *testing.T) {
	addr, err := ParseServerAddr("play.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if addr.Port != DefaultServerPort {
		t.Fatalf("got port %d, want %d", addr.Port, DefaultServerPort)
	}
	if addr.Host != "play.example.com" {
		t.Fatalf("got host %q", addr.Host)
	}
}

func TestParseServerAddrExplicitPort(t *testing.T) {
	addr, err := ParseServerAddr("play.example.com:25577")
	if err != nil {
		t.Fatal(err)
	}
	if addr.Port != 25577 {
		t.Fatalf("got port %d, want 25577", addr.Port)
	}
}

func TestParseServerAddrIPv6(t *testing.T) {
	addr, err := ParseServerAddr("[::1]:25565")
	if err != nil {
		t.Fatal(err)
	}
	if addr.Host != "::1" || addr.Port != 25565 {
		t.Fatalf("got %+v", addr)
	}
}

func TestParseServerAddrRejectsInvalidHostname(t *testing.T) {
	if _, err := ParseServerAddr("-bad-.example.com:25565"); err == nil {
		t.Fatal("expected an error for a hostname with an invalid label")
	}
}

func TestParseServerAddrRejectsZeroPort(t *testing.T) {
	if _, err := ParseServerAddr("play.example.com:0"); err == nil {
		t.Fatal("expected an error for port 0")
	}
}

func TestServerAddrStringRoundTrip(t *testing.T) {
	addr, err := ParseServerAddr("play.example.com:25566")
	if err != nil {
		t.Fatal(err)
	}
	if addr.String() != "play.example.com:25566" {
		t.Fatalf("got %q", addr.String())
	}

	var again ServerAddr
	if err := again.UnmarshalText([]byte(addr.String())); err != nil {
		t.Fatal(err)
	}
	if again != addr {
		t.Fatalf("got %+v, want %+v", again, addr)
	}
}
