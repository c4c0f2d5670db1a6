// Package pool provides sync.Pool backed helpers for building element paths.
package pool

import (
	"strconv"
	"sync"
)

// maxPooledPath is the largest buffer returned to the pool.
const maxPooledPath = 1024

var pathPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 128)
		return &b
	},
}

func acquire() *[]byte {
	b, ok := pathPool.Get().(*[]byte)
	if !ok {
		buf := make([]byte, 0, 128)
		b = &buf
	}
	*b = (*b)[:0]
	return b
}

func release(b *[]byte) {
	if cap(*b) <= maxPooledPath {
		pathPool.Put(b)
	}
}

// Child returns base.name, or name when base is empty.
func Child(base, name string) string {
	if base == "" {
		return name
	}
	b := acquire()
	defer release(b)
	*b = append(*b, base...)
	*b = append(*b, '.')
	*b = append(*b, name...)
	return string(*b)
}

// Indexed returns base.name[index], the path of one entry of a repeating element.
func Indexed(base, name string, index int) string {
	b := acquire()
	defer release(b)
	if base != "" {
		*b = append(*b, base...)
		*b = append(*b, '.')
	}
	*b = append(*b, name...)
	*b = append(*b, '[')
	*b = strconv.AppendInt(*b, int64(index), 10)
	*b = append(*b, ']')
	return string(*b)
}
