package router

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	mcnet "github.com/seiftnesse/mc-router/common/net"
)

// Server accepts connections on a single listen address and dispatches
// each to a Dispatcher in its own goroutine.
type Server struct {
	listener   net.Listener
	dispatcher *Dispatcher
	log        *logrus.Logger
}

// NewServer binds listenAddr and returns a Server ready to Serve.
func NewServer(listenAddr string, dispatcher *Dispatcher, log *logrus.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", listenAddr, err)
	}
	return &Server{listener: ln, dispatcher: dispatcher, log: log}, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Serve accepts connections until ctx is canceled or the listener is
// closed via Stop, handling each on its own goroutine. It returns nil once
// shutdown was requested; any other Accept error is logged and accepting
// continues.
func (s *Server) Serve(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.WithError(err).Warn("accept error")
			continue
		}

		if err := mcnet.OptimizeTCPConn(conn); err != nil {
			s.log.WithError(err).Debug("optimize client conn")
		}

		go s.dispatcher.HandleConnection(ctx, conn)
	}
}

// Stop closes the listener, causing a blocked Serve to return.
func (s *Server) Stop() error {
	return s.listener.Close()
}
