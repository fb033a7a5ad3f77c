package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Block addressing. A ref names the payload start; the header sits one
// word before it and the footer occupies the block's final word. All
// helpers take the arena bytes explicitly because growth can replace the
// backing array between operations.

func hdrOff(ref Ref) int {
	return ref - format.WordSize
}

func blockSize(data []byte, ref Ref) int {
	return format.TagSize(format.ReadTag(data, hdrOff(ref)))
}

func blockAllocated(data []byte, ref Ref) bool {
	return format.TagAllocated(format.ReadTag(data, hdrOff(ref)))
}

func ftrOff(data []byte, ref Ref) int {
	return ref + blockSize(data, ref) - format.BlockOverhead
}

// nextBlk returns the payload ref of the physically following block.
func nextBlk(data []byte, ref Ref) Ref {
	return ref + blockSize(data, ref)
}

// prevBlk returns the payload ref of the physically preceding block by
// reading its footer, which sits one word before this block's header.
func prevBlk(data []byte, ref Ref) Ref {
	return ref - format.TagSize(format.ReadTag(data, ref-format.BlockOverhead))
}

// writeBlock stamps matching header and footer tags for a block of the
// given total size.
func writeBlock(data []byte, ref Ref, size int, allocated bool) {
	format.WriteTag(data, hdrOff(ref), size, allocated)
	format.WriteTag(data, ref+size-format.BlockOverhead, size, allocated)
}

// checkRef validates that ref plausibly names a block before any header
// mutation: in bounds, aligned, sized like a real block, and with a
// footer mirroring the header. Freeing arbitrary offsets fails here
// instead of corrupting the heap.
func (h *Heap) checkRef(data []byte, ref Ref) error {
	if ref < minRef || ref >= len(data) || !format.Aligned8(ref) {
		return fmt.Errorf("%w: %#x", ErrBadRef, ref)
	}
	size := blockSize(data, ref)
	if size < format.MinBlockSize || !format.Aligned8(size) {
		return fmt.Errorf("%w: %#x: implausible size %d", ErrBadRef, ref, size)
	}
	// The epilogue header must still follow the block.
	if hdrOff(ref)+size > len(data)-format.WordSize {
		return fmt.Errorf("%w: %#x: block of %d bytes overruns heap end", ErrBadRef, ref, size)
	}
	if format.ReadTag(data, hdrOff(ref)) != format.ReadTag(data, ftrOff(data, ref)) {
		return fmt.Errorf("%w: %#x: header/footer mismatch", ErrBadRef, ref)
	}
	return nil
}
