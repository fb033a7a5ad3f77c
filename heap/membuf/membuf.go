// Package membuf provides growable contiguous byte arenas that back the
// heap allocator. Two implementations exist: Buffer, a plain in-memory
// arena, and Mapped, a file-backed arena that memory-maps its contents on
// platforms that support it.
//
// Arenas grow monotonically and never shrink. Callers address contents by
// byte offset, so the backing slice may be replaced wholesale on growth.
package membuf

import "errors"

var (
	// ErrLimit indicates a grow request would exceed the arena's size limit.
	ErrLimit = errors.New("membuf: arena size limit exceeded")

	// ErrGrowSize indicates a grow request for zero or negative bytes.
	ErrGrowSize = errors.New("membuf: grow size must be positive")
)

// Buffer is an in-memory arena. The zero value is unusable; construct with
// NewBuffer. A limit of 0 means unlimited.
type Buffer struct {
	data  []byte
	limit int
}

// NewBuffer returns an empty arena that refuses to grow past limit bytes.
// Pass 0 for no limit.
func NewBuffer(limit int) *Buffer {
	return &Buffer{limit: limit}
}

// Bytes returns the current arena contents. The slice is invalidated by
// the next Grow call; callers must re-fetch after growing.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Grow extends the arena by n zeroed bytes.
func (b *Buffer) Grow(n int) error {
	if n <= 0 {
		return ErrGrowSize
	}
	if b.limit > 0 && len(b.data)+n > b.limit {
		return ErrLimit
	}
	b.data = append(b.data, make([]byte, n)...)
	return nil
}

// Len returns the current arena size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}
