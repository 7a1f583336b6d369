// Package bufpool pools byte slices so the splice pump doesn't allocate a
// fresh buffer per connection per direction.
package bufpool

import "sync"

// DefaultSize is the buffer size used for the splice pump's tier.
const DefaultSize = 64 * 1024

// Pool is a sync.Pool of fixed-size byte slices.
type Pool struct {
	size int
	pool sync.Pool
}

// NewPool creates a pool whose buffers are size bytes long.
func NewPool(size int) *Pool {
	p := &Pool{size: size}
	p.pool.New = func() interface{} {
		buf := make([]byte, p.size)
		return &buf
	}
	return p
}

// Get returns a size-length buffer from the pool.
func (p *Pool) Get() []byte {
	bufPtr := p.pool.Get().(*[]byte)
	return *bufPtr
}

// Put zeroes buf and returns it to the pool.
func (p *Pool) Put(buf []byte) {
	clear(buf)
	p.pool.Put(&buf)
}

// tier is one rung of the size ladder Get/Put route through: a request at
// or below ceiling is served from pool.
type tier struct {
	ceiling int
	pool    *Pool
}

// tiers is ordered smallest-ceiling first; tierFor walks it looking for the
// first rung a request fits under, falling back to the last (largest) rung
// for anything bigger.
var tiers = []tier{
	{ceiling: 4 * 1024, pool: NewPool(4 * 1024)},
	{ceiling: 16 * 1024, pool: NewPool(16 * 1024)},
	{ceiling: 64 * 1024, pool: NewPool(64 * 1024)},
	{ceiling: 128 * 1024, pool: NewPool(128 * 1024)},
}

// SmallPool, MediumPool, LargePool and HugePool expose the individual
// tiers for callers that want a fixed size rather than the size-routed
// Get/Put below. LargePool is what the splice pump uses directly.
var (
	SmallPool  = tiers[0].pool
	MediumPool = tiers[1].pool
	LargePool  = tiers[2].pool
	HugePool   = tiers[3].pool
)

func tierFor(n int) *Pool {
	for _, t := range tiers {
		if n <= t.ceiling {
			return t.pool
		}
	}
	return tiers[len(tiers)-1].pool
}

// Get returns a buffer at least size bytes long from whichever tier fits
// best, truncated to exactly size. A size above the largest tier gets a
// freshly allocated buffer.
func Get(size int) []byte {
	if size > tiers[len(tiers)-1].ceiling {
		return make([]byte, size)
	}
	return tierFor(size).Get()[:size]
}

// Put returns buf to whichever tier its length corresponds to. A buffer
// longer than the largest tier is dropped rather than pooled.
func Put(buf []byte) {
	if len(buf) > tiers[len(tiers)-1].ceiling {
		return
	}
	tierFor(len(buf)).Put(buf)
}
