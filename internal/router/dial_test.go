package router

import (
	"context"
	"net"
	"testing"
	"time"

	mcnet "github.com/seiftnesse/mc-router/common/net"
)

func TestNetDialerConnectsToListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	accepted := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
		close(accepted)
	}()

	tcpAddr := ln.Addr().(*net.TCPAddr)
	host, err := mcnet.ParseHostname(tcpAddr.IP.String())
	if err != nil {
		t.Fatal(err)
	}
	addr := mcnet.ServerAddr{Host: host, Port: uint16(tcpAddr.Port)}

	d := NetDialer{}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := d.Dial(ctx, addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	conn.Close()

	select {
	case <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("listener never accepted the dialed connection")
	}
}

func TestNetDialerErrorOnUnreachable(t *testing.T) {
	host, err := mcnet.ParseHostname("127.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	// Port 1 on loopback is an address nothing listens on.
	addr := mcnet.ServerAddr{Host: host, Port: 1}

	d := NetDialer{}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if _, err := d.Dial(ctx, addr); err == nil {
		t.Fatal("expected an error dialing a port nothing listens on")
	}
}
