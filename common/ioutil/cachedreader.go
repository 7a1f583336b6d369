package ioutil

import (
	"bytes"
	"io"
)

// CachedReader wraps an io.Reader and records every byte that passes
// through Read, so those bytes can be replayed to a different writer later.
// The router uses this to decode a client's Handshake (and, for a login
// connection, its LoginStart) once while keeping the exact bytes it read,
// then forwards that cache to the backend verbatim instead of re-encoding
// the packets - re-encoding would silently drop any field the router
// doesn't know how to parse.
//
// Unlike a read-ahead buffer, CachedReader never requests more from the
// underlying reader than the caller asked for, so nothing is over-read.
// That matters because after the caching phase ends, remaining reads
// switch to the underlying reader directly (or to another wrapper around
// it) - any bytes CachedReader had prefetched but not yet handed out would
// otherwise be lost.
type CachedReader struct {
	r        io.Reader
	cache    bytes.Buffer
	released bool
}

// NewCachedReader wraps r.
func NewCachedReader(r io.Reader) *CachedReader {
	return &CachedReader{r: r}
}

func (c *CachedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 && !c.released {
		c.cache.Write(p[:n])
	}
	return n, err
}

// Cache returns every byte read through c so far.
func (c *CachedReader) Cache() []byte {
	return c.cache.Bytes()
}

// Release returns the underlying reader and stops recording further reads.
// Call it once the caller is done needing a replay of what it has read so
// far - continuing to read through the CachedReader after this is still
// safe, it just stops growing the cache.
func (c *CachedReader) Release() io.Reader {
	c.released = true
	return c.r
}
