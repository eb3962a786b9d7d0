package bench

import "github.com/valyala/bytebufferpool"

// Destination buffers are sized before the clock starts and recycled between
// configurations so each timed section runs without allocating.

func minSizedBuffer(size int) *bytebufferpool.ByteBuffer {
	buf := bytebufferpool.Get()
	if cap(buf.B) < size {
		buf.B = make([]byte, size)
	}
	buf.B = buf.B[:size]
	return buf
}

func releaseBuffers(bufs ...*bytebufferpool.ByteBuffer) {
	for _, b := range bufs {
		if b != nil {
			bytebufferpool.Put(b)
		}
	}
}
