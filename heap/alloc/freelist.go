package alloc

import "github.com/joshuapare/heapkit/internal/format"

// The free list is intrusive: a free block's first two payload words hold
// the refs of its list neighbors (prev, then next). NilRef terminates the
// list at both ends, so removal at the head or tail never writes through
// an invalid offset.

func listPrev(data []byte, ref Ref) Ref {
	return Ref(format.ReadU64(data, ref))
}

func listNext(data []byte, ref Ref) Ref {
	return Ref(format.ReadU64(data, ref+format.WordSize))
}

func setListPrev(data []byte, ref, to Ref) {
	format.PutU64(data, ref, uint64(to))
}

func setListNext(data []byte, ref, to Ref) {
	format.PutU64(data, ref+format.WordSize, uint64(to))
}

// listInsert pushes a free block at the head of the free list.
func (h *Heap) listInsert(data []byte, ref Ref) {
	setListPrev(data, ref, NilRef)
	setListNext(data, ref, h.freeHead)
	if h.freeHead != NilRef {
		setListPrev(data, h.freeHead, ref)
	}
	h.freeHead = ref
}

// listRemove splices a block out of the free list. The block's own link
// words are left stale; they are rewritten on the next insert.
func (h *Heap) listRemove(data []byte, ref Ref) {
	prev := listPrev(data, ref)
	next := listNext(data, ref)
	if prev != NilRef {
		setListNext(data, prev, next)
	} else {
		h.freeHead = next
	}
	if next != NilRef {
		setListPrev(data, next, prev)
	}
}
