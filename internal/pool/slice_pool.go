package pool

import "sync"

// int16SlicePool backs the per-chunk decode scratch buffer (spec.md §5):
// one chunk's worth of decoded integers, reused across chunks within a read
// and across reads.
var int16SlicePool = sync.Pool{
	New: func() any { return &[]int16{} },
}

// GetInt16Slice retrieves an int16 slice of exactly size length from the
// pool. The caller must call the returned cleanup function to return it.
func GetInt16Slice(size int) ([]int16, func()) {
	ptr, _ := int16SlicePool.Get().(*[]int16)
	slice := (*ptr)[:0]
	if cap(slice) < size {
		slice = make([]int16, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { int16SlicePool.Put(ptr) }
}
