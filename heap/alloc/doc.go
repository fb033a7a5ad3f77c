// Package alloc implements a boundary-tag heap allocator over a growable
// byte arena.
//
// # Overview
//
// The heap is one contiguous byte range supplied by an Arena. Every block
// carries a header word at its start and an identical footer word at its
// end, each packing the block's total size with an allocated bit. Free
// blocks additionally repurpose their first two payload words as the prev
// and next links of an intrusive doubly-linked free list.
//
// The heap is bounded by two allocated sentinel blocks: a prologue at the
// low end and a zero-size epilogue header at the high end. Because both
// are permanently marked allocated, coalescing never needs bounds checks
// at the heap's edges.
//
// # Allocation strategy
//
//   - First-fit: the free list is scanned from the head and the first
//     block large enough wins.
//   - Splitting: when the chosen block leaves a remainder of at least the
//     minimum block size, the remainder becomes a new free block.
//   - Coalescing: freeing merges the block with free physical neighbors
//     in both directions using the boundary tags, so no two adjacent
//     blocks are ever both free.
//   - Growth: when no block fits, the arena is extended by at least the
//     configured chunk size and the new region is merged with a trailing
//     free block before placement retries.
//
// # Usage Example
//
//	h, err := alloc.New(membuf.NewBuffer(0))
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := h.Alloc(256)
//	if err != nil {
//	    return err
//	}
//
//	// Write into buf...
//
//	// Later, free the block
//	err = h.Free(ref)
//
// # Block references
//
// Refs are byte offsets of a block's payload within the arena, so they
// stay valid when growth replaces the backing array. NilRef (0) is the
// null reference; Alloc(0) returns it and Free(NilRef) is a no-op.
//
// # Alignment
//
// All payloads are 8-byte aligned. Requested sizes are rounded up to the
// alignment granularity plus the fixed header/footer overhead, with a
// floor of the minimum block size.
//
// # Diagnostics
//
// Check reports whether the heap satisfies its structural invariants;
// CheckDetailed returns one Violation per broken invariant with the
// offending offset. Neither is intended for the allocation hot path.
//
// # Thread safety
//
// Heap instances are not thread-safe. Callers must synchronize access
// externally; a single mutex around the whole heap is sufficient given
// the scan-everything fit strategy.
//
// # Related packages
//
//   - github.com/joshuapare/heapkit/heap/membuf: arena providers
//   - github.com/joshuapare/heapkit/internal/format: boundary-tag codec
package alloc
