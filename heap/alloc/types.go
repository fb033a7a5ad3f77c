package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Ref is a block reference: the byte offset of the block's payload within
// the arena. Offsets stay valid across growth even when the backing array
// moves, which is why the allocator never hands out raw slices as block
// identity.
type Ref = int

// NilRef is the null block reference. Offset 0 holds the arena's padding
// word and can never be a payload.
const NilRef Ref = 0

// Arena is the raw heap provider: a contiguous byte region that grows
// monotonically and never shrinks. The slice returned by Bytes is
// invalidated by Grow, so callers re-fetch it after every growth.
type Arena interface {
	Bytes() []byte
	Grow(n int) error
}

// DefaultChunkSize is the minimum number of bytes the heap grows by when
// no free block satisfies a request.
const DefaultChunkSize = 4096

// Bootstrap layout. The arena opens with one zeroed padding word so that
// payloads land on 8-byte boundaries, then the prologue sentinel block,
// then the epilogue header.
const (
	// prologueHdrOff is the offset of the prologue block's header word.
	prologueHdrOff = format.WordSize

	// prologueRef is the prologue block's payload offset, which doubles as
	// the offset of its footer since the prologue has no payload bytes.
	prologueRef = prologueHdrOff + format.WordSize

	// minRef is the lowest offset an ordinary block's payload can occupy.
	minRef = prologueHdrOff + format.PrologueSize + format.WordSize

	// bootstrapSize covers the padding word, prologue, and epilogue header.
	bootstrapSize = 4 * format.WordSize
)

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithChunkSize sets the minimum growth increment in bytes. The value is
// rounded up to the alignment granularity and must cover at least one
// minimum-size block.
func WithChunkSize(n int) Option {
	return func(h *Heap) { h.chunk = n }
}
