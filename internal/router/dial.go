package router

import (
	"context"
	"fmt"
	"net"

	mcnet "github.com/seiftnesse/mc-router/common/net"
	"github.com/sirupsen/logrus"
)

// Dialer opens backend connections. It exists as an interface mainly so
// tests can substitute a fake without opening real sockets.
type Dialer interface {
	Dial(ctx context.Context, addr mcnet.ServerAddr) (net.Conn, error)
}

// NetDialer dials backends with net.Dialer directly, applying
// OptimizeTCPConn once connected.
type NetDialer struct {
	Log *logrus.Entry
}

func (d NetDialer) Dial(ctx context.Context, addr mcnet.ServerAddr) (net.Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr.String())
	if err != nil {
		return nil, fmt.Errorf("dial backend %s: %w", addr, err)
	}
	if err := mcnet.OptimizeTCPConn(conn); err != nil {
		d.logf("optimize backend conn %s: %v", addr, err)
	}
	return conn, nil
}

func (d NetDialer) logf(format string, args ...interface{}) {
	if d.Log != nil {
		d.Log.Debugf(format, args...)
	}
}
