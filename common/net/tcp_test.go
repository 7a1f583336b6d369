package net

import (
	"net"
	"testing"
	"time"
)

func TestOptimizeTCPConnIgnoresNonTCPConns(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	if err := OptimizeTCPConn(a); err != nil {
		t.Fatalf("expected no-op for a non-TCP conn, got %v", err)
	}
}

func TestOptimizeTCPConnTunesRealTCPConn(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, _ := ln.Accept()
		accepted <- conn
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	server := <-accepted
	defer server.Close()

	if err := OptimizeTCPConn(client); err != nil {
		t.Fatalf("OptimizeTCPConn: %v", err)
	}
}

func TestSetTCPDeadlinesSkipsZero(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	if err := SetTCPDeadlines(a, 0, 0); err != nil {
		t.Fatalf("expected no error for zero deadlines, got %v", err)
	}
	if err := SetTCPDeadlines(a, 50*time.Millisecond, 0); err != nil {
		t.Fatalf("SetTCPDeadlines: %v", err)
	}
}
