package internal

import (
	"bytes"
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
)

// BufferPool holds scratch buffers for encoding recording frames and state digests.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 128))
	},
}

// GetBuffer retrieves an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool.
func PutBuffer(buf *bytes.Buffer) {
	BufferPool.Put(buf)
}

// BBoxListPool is a pool of reusable BBox slices for collision queries.
var BBoxListPool = sync.Pool{
	New: func() interface{} {
		s := make([]cube.BBox, 0, 32)
		return &s
	},
}

// GetBBoxList retrieves an empty BBox slice from the pool.
func GetBBoxList() *[]cube.BBox {
	list := BBoxListPool.Get().(*[]cube.BBox)
	*list = (*list)[:0]
	return list
}

// PutBBoxList returns a BBox slice to the pool.
func PutBBoxList(list *[]cube.BBox) {
	if list != nil {
		*list = (*list)[:0]
		BBoxListPool.Put(list)
	}
}
