package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Alloc returns a reference to a block with at least n usable payload
// bytes, plus the payload slice. A zero-size request is a no-op returning
// NilRef. The payload slice is only valid until the next operation that
// grows the heap; the ref stays valid until the block is freed.
func (h *Heap) Alloc(n int) (Ref, []byte, error) {
	h.stats.AllocCalls++

	if n == 0 {
		return NilRef, nil, nil
	}
	if n < 0 {
		return NilRef, nil, fmt.Errorf("%w: %d", ErrBadSize, n)
	}

	// Adjusted block size: payload rounded up to the alignment
	// granularity plus header/footer overhead, floored at the minimum so
	// the block can hold free-list links once freed.
	asize := format.Align8(n) + format.BlockOverhead
	if asize < format.MinBlockSize {
		asize = format.MinBlockSize
	}

	data := h.arena.Bytes()
	ref := h.findFit(data, asize)
	if ref == NilRef {
		if logAlloc {
			debugLogf("alloc(%d): no fit for %d-byte block, growing", n, asize)
		}
		grow := max(asize, h.chunk)
		var err error
		ref, err = h.extendHeap(grow)
		if err != nil {
			return NilRef, nil, fmt.Errorf("%w: %s", ErrNoSpace, err)
		}
		// The grown region was sized to fit, and coalescing with a
		// trailing free block can only enlarge it, so placement cannot
		// miss here.
		data = h.arena.Bytes()
	}

	h.place(data, ref, asize)

	size := blockSize(data, ref)
	h.stats.BytesAllocated += int64(size)
	return ref, data[ref : ref+size-format.BlockOverhead], nil
}

// findFit performs a first-fit linear scan of the free list from the
// head, returning the first block of at least asize total bytes, or
// NilRef when nothing fits.
func (h *Heap) findFit(data []byte, asize int) Ref {
	for ref := h.freeHead; ref != NilRef; ref = listNext(data, ref) {
		if blockSize(data, ref) >= asize {
			return ref
		}
	}
	return NilRef
}

// place commits a free block to an allocation of asize total bytes. The
// block leaves the free list before any header mutation. When the
// leftover would form a legal block, the front becomes the allocation and
// the remainder returns to the free list; otherwise the whole block is
// taken and the slack stays inside it as internal fragmentation.
func (h *Heap) place(data []byte, ref Ref, asize int) {
	csize := blockSize(data, ref)
	h.listRemove(data, ref)

	if csize-asize >= format.MinBlockSize {
		h.stats.SplitCount++
		writeBlock(data, ref, asize, true)
		rem := nextBlk(data, ref)
		writeBlock(data, rem, csize-asize, false)
		// The remainder's right neighbor may itself be free; coalescing
		// here keeps the no-adjacent-free-blocks invariant intact.
		h.coalesce(data, rem)
	} else {
		writeBlock(data, ref, csize, true)
	}
}
