// Package ioutil provides the splice pump's buffered copy and the cached
// peek-reader the dispatcher uses to replay a client's opening bytes to a
// backend verbatim.
package ioutil

import (
	"io"

	"github.com/seiftnesse/mc-router/common/bufpool"
)

// Copy is io.Copy with a pooled buffer, used by the splice pump so a
// connection's lifetime doesn't cost a fresh allocation per direction.
func Copy(dst io.Writer, src io.Reader) (written int64, err error) {
	buf := bufpool.LargePool.Get()
	defer bufpool.LargePool.Put(buf)
	return io.CopyBuffer(dst, src, buf)
}
