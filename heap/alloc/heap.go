package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Heap owns one contiguous allocatable region and all bookkeeping state:
// the arena, the free-list head, and operation statistics. Independent
// heaps over independent arenas do not share anything.
type Heap struct {
	arena    Arena
	freeHead Ref
	chunk    int
	stats    Stats

	// Test hook: called with the aligned byte count before every arena
	// extension (nil in production).
	onGrow func(int)
}

// New bootstraps a heap on an empty arena: padding word, prologue block,
// epilogue header, then one chunk of real free space seeded through the
// same growth path allocation misses use.
func New(a Arena, opts ...Option) (*Heap, error) {
	h := &Heap{
		arena:    a,
		freeHead: NilRef,
		chunk:    DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.chunk < format.MinBlockSize {
		return nil, fmt.Errorf("%w: chunk size %d below minimum block size %d",
			ErrInit, h.chunk, format.MinBlockSize)
	}
	h.chunk = format.Align8(h.chunk)

	if len(a.Bytes()) != 0 {
		return nil, fmt.Errorf("%w: arena not empty", ErrInit)
	}
	if err := a.Grow(bootstrapSize); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInit, err)
	}

	data := a.Bytes()
	format.PutU64(data, 0, 0) // alignment padding word
	format.WriteTag(data, prologueHdrOff, format.PrologueSize, true)
	format.WriteTag(data, prologueRef, format.PrologueSize, true) // prologue footer
	format.WriteTag(data, prologueRef+format.WordSize, 0, true)   // epilogue header

	if _, err := h.extendHeap(h.chunk); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInit, err)
	}
	return h, nil
}

// extendHeap grows the arena by at least n bytes, formats the new region
// as one free block whose header overwrites the old epilogue, writes a
// fresh epilogue at the new end, and coalesces with a trailing free block
// if the heap ended in one. Returns the resulting block's ref.
func (h *Heap) extendHeap(n int) (Ref, error) {
	n = format.Align8(n)
	if h.onGrow != nil {
		h.onGrow(n)
	}

	old := len(h.arena.Bytes())
	if err := h.arena.Grow(n); err != nil {
		return NilRef, fmt.Errorf("%w: %s", ErrGrowFail, err)
	}
	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(n)

	data := h.arena.Bytes()
	ref := Ref(old) // payload begins one word past the old epilogue header
	writeBlock(data, ref, n, false)
	format.WriteTag(data, hdrOff(ref)+n, 0, true) // new epilogue header

	if logAlloc {
		debugLogf("grow #%d: +%d bytes, heap now %d bytes", h.stats.GrowCalls, n, len(data))
	}

	return h.coalesce(data, ref), nil
}

// Size returns the current heap extent in bytes, including sentinels.
// Together with offset 0 this bounds every valid block address; the
// checker uses it when validating free-list pointers.
func (h *Heap) Size() int {
	return len(h.arena.Bytes())
}

// UsableSize returns the payload capacity of an allocated or free block.
func (h *Heap) UsableSize(ref Ref) (int, error) {
	data := h.arena.Bytes()
	if err := h.checkRef(data, ref); err != nil {
		return 0, err
	}
	return blockSize(data, ref) - format.BlockOverhead, nil
}

// Bytes returns the payload of the block at ref. The slice is only valid
// until the next operation that grows the heap.
func (h *Heap) Bytes(ref Ref) ([]byte, error) {
	data := h.arena.Bytes()
	if err := h.checkRef(data, ref); err != nil {
		return nil, err
	}
	return data[ref : ref+blockSize(data, ref)-format.BlockOverhead], nil
}
