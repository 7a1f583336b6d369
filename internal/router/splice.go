package router

import (
	"io"
	"net"
	"sync"

	"github.com/seiftnesse/mc-router/common/ioutil"
)

// halfCloser is implemented by *net.TCPConn; splicing half-closes each leg
// on EOF instead of fully closing it, so a backend that still has data
// queued for the client (or vice versa) gets to finish sending it.
type halfCloser interface {
	CloseWrite() error
}

// Splice pumps bytes in both directions between clientReader (the client
// connection, possibly already advanced past some bytes consumed during
// handshake decoding) and backend, until both directions have seen EOF or
// hit an error. It returns once both pumps have finished. When a pump ends,
// its destination is half-closed if it supports CloseWrite and fully closed
// otherwise; the caller still owns the final Close of both connections.
func Splice(clientConn net.Conn, clientReader io.Reader, backend net.Conn) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		pump(backend, clientReader)
		if hc, ok := backend.(halfCloser); ok {
			_ = hc.CloseWrite()
		} else {
			_ = backend.Close()
		}
	}()

	go func() {
		defer wg.Done()
		pump(clientConn, backend)
		if hc, ok := clientConn.(halfCloser); ok {
			_ = hc.CloseWrite()
		} else {
			_ = clientConn.Close()
		}
	}()

	wg.Wait()
}

// pump copies until EOF, discarding the error - once a splice leg is
// running there is nothing useful to do with a reset or timeout beyond
// ending that direction's copy.
func pump(dst io.Writer, src io.Reader) {
	_, _ = ioutil.Copy(dst, src)
}
