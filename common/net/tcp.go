// Package net holds small TCP helpers and the Hostname/ServerAddr value
// types the router's config uses to describe where clients and backends
// live.
package net

import (
	"net"
	"time"
)

// OptimizeTCPConn tunes a connection for low-latency proxying: Nagle's
// algorithm off, keep-alives on, generous socket buffers. Called on both
// the accepted client connection and the dialed backend connection.
func OptimizeTCPConn(conn net.Conn) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}

	if err := tcpConn.SetNoDelay(true); err != nil {
		return err
	}
	if err := tcpConn.SetKeepAlive(true); err != nil {
		return err
	}
	if err := tcpConn.SetKeepAlivePeriod(30 * time.Second); err != nil {
		return err
	}
	if err := tcpConn.SetReadBuffer(512 * 1024); err != nil {
		return err
	}
	if err := tcpConn.SetWriteBuffer(512 * 1024); err != nil {
		return err
	}
	return nil
}

// SetTCPDeadlines applies read/write deadlines, skipping whichever one is
// zero.
func SetTCPDeadlines(conn net.Conn, readTimeout, writeTimeout time.Duration) error {
	if readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return err
		}
	}
	if writeTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return err
		}
	}
	return nil
}
