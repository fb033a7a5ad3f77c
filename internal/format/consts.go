// Package format houses the low-level boundary-tag codec for the heap
// layout. The goal is to keep the encoding focused and allocation-free so
// the allocator package can orchestrate blocks in a more ergonomic form.
package format

const (
	// WordSize is the size of one boundary-tag word in bytes. Headers and
	// footers each occupy exactly one word.
	WordSize = 8

	// BlockOverhead is the number of bytes consumed by a block's header and
	// footer together.
	BlockOverhead = 2 * WordSize

	// MinBlockSize is the smallest legal block: header, footer, and two
	// payload words that hold the free-list links while the block is free.
	MinBlockSize = BlockOverhead + 2*WordSize

	// PrologueSize is the size of the prologue sentinel block: a header and
	// footer with no payload. The epilogue is a single header word with an
	// encoded size of zero.
	PrologueSize = BlockOverhead

	// Alignment is the required alignment of block addresses and payload
	// starts within the heap.
	Alignment = 8

	// AlignmentMask is the bitmask used for aligning to 8-byte boundaries
	// (Alignment - 1).
	AlignmentMask = Alignment - 1

	// AllocatedBit is the flag packed into the low bit of a tag word.
	// Sizes are multiples of Alignment, so the low three bits of the size
	// are always free for flags.
	AllocatedBit = 0x1

	// SizeMask extracts the size portion of a tag word.
	SizeMask = ^uint64(AlignmentMask)
)
