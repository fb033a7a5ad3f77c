package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Violation kinds reported by CheckDetailed.
const (
	ViolationTruncated    = "truncated-heap"
	ViolationPrologue     = "bad-prologue"
	ViolationEpilogue     = "bad-epilogue"
	ViolationAlignment    = "misaligned-block"
	ViolationTagMismatch  = "header-footer-mismatch"
	ViolationAdjacentFree = "adjacent-free-blocks"
	ViolationListBounds   = "free-list-pointer-out-of-bounds"
	ViolationListState    = "free-list-entry-not-free"
	ViolationListMissing  = "free-block-missing-from-list"
	ViolationListCycle    = "free-list-cycle"
)

// Violation describes one broken heap invariant: which kind, at which
// offset, with enough detail to make a test failure actionable.
type Violation struct {
	Off    int
	Kind   string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at %#x: %s", v.Kind, v.Off, v.Detail)
}

// Check reports whether the heap satisfies all structural invariants.
// Diagnostic use only; not intended for the allocation hot path.
func (h *Heap) Check() bool {
	return len(h.CheckDetailed()) == 0
}

// CheckDetailed walks the whole heap and the free list and returns one
// Violation per broken invariant. A valid heap returns an empty slice.
//
// Verified invariants:
//   - prologue and epilogue sentinels are intact and allocated
//   - every block is 8-byte aligned with matching header and footer
//   - no two physically adjacent blocks are both free
//   - the free list contains exactly the free blocks, each once
//   - free-list link words stay within the heap's address bounds
func (h *Heap) CheckDetailed() []Violation {
	var out []Violation
	data := h.arena.Bytes()

	if len(data) < bootstrapSize {
		return append(out, Violation{0, ViolationTruncated,
			fmt.Sprintf("heap is %d bytes, below bootstrap size %d", len(data), bootstrapSize)})
	}

	hdr := format.ReadTag(data, prologueHdrOff)
	ftr := format.ReadTag(data, prologueRef)
	if format.TagSize(hdr) != format.PrologueSize || !format.TagAllocated(hdr) || hdr != ftr {
		out = append(out, Violation{prologueHdrOff, ViolationPrologue,
			fmt.Sprintf("want allocated size %d with matching footer, got header %#x footer %#x",
				format.PrologueSize, hdr, ftr)})
	}

	freeSet := make(map[Ref]bool)
	prevFree := false

	ref := minRef
	for {
		hoff := hdrOff(ref)
		if hoff+format.WordSize > len(data) {
			out = append(out, Violation{hoff, ViolationTruncated,
				"block walk ran past the heap end without an epilogue"})
			break
		}
		tag := format.ReadTag(data, hoff)
		size := format.TagSize(tag)

		if size == 0 {
			// Epilogue: allocated, and exactly the heap's final word.
			if !format.TagAllocated(tag) {
				out = append(out, Violation{hoff, ViolationEpilogue, "epilogue not marked allocated"})
			}
			if hoff != len(data)-format.WordSize {
				out = append(out, Violation{hoff, ViolationEpilogue,
					fmt.Sprintf("epilogue at %#x, heap ends at %#x", hoff, len(data))})
			}
			break
		}

		if !format.Aligned8(ref) || !format.Aligned8(size) {
			out = append(out, Violation{ref, ViolationAlignment,
				fmt.Sprintf("ref %#x size %d", ref, size)})
			break // cannot walk further safely
		}
		if hoff+size > len(data)-format.WordSize {
			out = append(out, Violation{ref, ViolationTruncated,
				fmt.Sprintf("block of %d bytes overruns heap end", size)})
			break
		}
		if tag != format.ReadTag(data, ftrOff(data, ref)) {
			out = append(out, Violation{ref, ViolationTagMismatch,
				fmt.Sprintf("header %#x footer %#x", tag, format.ReadTag(data, ftrOff(data, ref)))})
		}

		free := !format.TagAllocated(tag)
		if free {
			if prevFree {
				out = append(out, Violation{ref, ViolationAdjacentFree,
					"previous physical block is also free"})
			}
			freeSet[ref] = true
		}
		prevFree = free
		ref += size
	}

	// Free-list traversal: bounds, state, and exact membership.
	seen := make(map[Ref]bool)
	maxNodes := len(data)/format.MinBlockSize + 1
	steps := 0
	for ref := h.freeHead; ref != NilRef; ref = listNext(data, ref) {
		if ref < minRef || ref >= len(data)-format.WordSize || !format.Aligned8(ref) {
			out = append(out, Violation{ref, ViolationListBounds,
				"list node outside heap bounds"})
			break
		}
		if seen[ref] {
			out = append(out, Violation{ref, ViolationListCycle, "node visited twice"})
			break
		}
		seen[ref] = true

		if !freeSet[ref] {
			out = append(out, Violation{ref, ViolationListState,
				"listed block is not a free heap block"})
		}
		if p := listPrev(data, ref); p != NilRef && (p < minRef || p >= len(data)-format.WordSize) {
			out = append(out, Violation{ref, ViolationListBounds,
				fmt.Sprintf("prev link %#x outside heap bounds", p)})
		}
		if n := listNext(data, ref); n != NilRef && (n < minRef || n >= len(data)-format.WordSize) {
			out = append(out, Violation{ref, ViolationListBounds,
				fmt.Sprintf("next link %#x outside heap bounds", n)})
			break
		}

		steps++
		if steps > maxNodes {
			out = append(out, Violation{ref, ViolationListCycle,
				"list longer than the heap can hold"})
			break
		}
	}

	for ref := range freeSet {
		if !seen[ref] {
			out = append(out, Violation{ref, ViolationListMissing,
				"free block not reachable from the free-list head"})
		}
	}

	return out
}
