package alloc

import "fmt"

// Free releases the block at ref back to the heap. NilRef is a no-op.
// The reference is validated before any mutation: freeing an offset that
// does not name an allocated block returns ErrBadRef or ErrNotAllocated
// and leaves the heap untouched.
func (h *Heap) Free(ref Ref) error {
	h.stats.FreeCalls++

	if ref == NilRef {
		return nil
	}
	data := h.arena.Bytes()
	if err := h.checkRef(data, ref); err != nil {
		return err
	}
	if !blockAllocated(data, ref) {
		return fmt.Errorf("%w: %#x already free", ErrNotAllocated, ref)
	}

	size := blockSize(data, ref)
	writeBlock(data, ref, size, false)
	h.stats.BytesFreed += int64(size)

	h.coalesce(data, ref)
	return nil
}

// coalesce merges the free block at ref with free physical neighbors,
// inserts the result at the free-list head exactly once, and returns its
// ref. Growth-path callers need the returned ref because a backward merge
// moves the block's identity to the predecessor's address.
//
// The prologue and epilogue sentinels are permanently allocated, so the
// neighbor lookups never need bounds or self-reference checks.
func (h *Heap) coalesce(data []byte, ref Ref) Ref {
	prevFree := !blockAllocated(data, prevBlk(data, ref))
	next := nextBlk(data, ref)
	nextFree := !blockAllocated(data, next)
	size := blockSize(data, ref)

	switch {
	case !prevFree && !nextFree:
		// No merge.

	case !prevFree && nextFree:
		h.stats.CoalesceForward++
		h.listRemove(data, next)
		size += blockSize(data, next)
		writeBlock(data, ref, size, false)

	case prevFree && !nextFree:
		h.stats.CoalesceBackward++
		prev := prevBlk(data, ref)
		h.listRemove(data, prev)
		size += blockSize(data, prev)
		ref = prev
		writeBlock(data, ref, size, false)

	default:
		h.stats.CoalesceBoth++
		prev := prevBlk(data, ref)
		h.listRemove(data, prev)
		h.listRemove(data, next)
		size += blockSize(data, prev) + blockSize(data, next)
		ref = prev
		writeBlock(data, ref, size, false)
	}

	h.listInsert(data, ref)
	return ref
}
