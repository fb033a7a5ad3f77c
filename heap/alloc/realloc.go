package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Realloc resizes the block at ref by allocating a new block of n bytes,
// copying min(n, old payload size) bytes, and freeing the old block. No
// in-place growth is attempted even when adjacent space would allow it.
//
// Realloc(NilRef, n) behaves like Alloc(n); Realloc(ref, 0) frees the
// block and returns NilRef. Allocation failure is returned to the caller
// with the original block left intact.
func (h *Heap) Realloc(ref Ref, n int) (Ref, []byte, error) {
	h.stats.ReallocCalls++

	if ref == NilRef {
		return h.Alloc(n)
	}
	if n == 0 {
		if err := h.Free(ref); err != nil {
			return NilRef, nil, err
		}
		return NilRef, nil, nil
	}

	data := h.arena.Bytes()
	if err := h.checkRef(data, ref); err != nil {
		return NilRef, nil, err
	}
	if !blockAllocated(data, ref) {
		return NilRef, nil, fmt.Errorf("%w: %#x", ErrNotAllocated, ref)
	}
	oldPayload := blockSize(data, ref) - format.BlockOverhead

	newRef, buf, err := h.Alloc(n)
	if err != nil {
		return NilRef, nil, err
	}

	// Alloc may have grown the arena; the old offset is still valid but
	// the byte slice must be re-fetched.
	data = h.arena.Bytes()
	copy(buf, data[ref:ref+min(n, oldPayload)])

	if err := h.Free(ref); err != nil {
		return NilRef, nil, err
	}
	return newRef, buf, nil
}
