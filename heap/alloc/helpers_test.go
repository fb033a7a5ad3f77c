package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/membuf"
	"github.com/joshuapare/heapkit/internal/format"
)

// newTestHeap builds a heap over an unlimited in-memory arena.
func newTestHeap(t *testing.T, opts ...Option) *Heap {
	t.Helper()
	h, err := New(membuf.NewBuffer(0), opts...)
	require.NoError(t, err)
	require.True(t, h.Check(), "fresh heap must pass the consistency check")
	return h
}

// blockInfo is one physical block observed during a heap walk.
type blockInfo struct {
	ref       Ref
	size      int
	allocated bool
}

// walkHeap traverses the physical block sequence between the sentinels.
func walkHeap(t *testing.T, h *Heap) []blockInfo {
	t.Helper()
	data := h.arena.Bytes()

	var blocks []blockInfo
	ref := minRef
	for {
		size := blockSize(data, ref)
		if size == 0 { // epilogue
			break
		}
		blocks = append(blocks, blockInfo{ref: ref, size: size, allocated: blockAllocated(data, ref)})
		ref += size
		require.LessOrEqual(t, hdrOff(ref), len(data)-format.WordSize, "walk overran the heap")
	}
	return blocks
}

// freeBlocks filters a walk down to the free blocks.
func freeBlocks(t *testing.T, h *Heap) []blockInfo {
	t.Helper()
	var free []blockInfo
	for _, b := range walkHeap(t, h) {
		if !b.allocated {
			free = append(free, b)
		}
	}
	return free
}

// failingArena wraps a Buffer and fails every Grow after failAfter
// successful calls. Used to exercise out-of-memory paths.
type failingArena struct {
	buf       *membuf.Buffer
	failAfter int
	grows     int
}

func newFailingArena(failAfter int) *failingArena {
	return &failingArena{buf: membuf.NewBuffer(0), failAfter: failAfter}
}

func (a *failingArena) Bytes() []byte {
	return a.buf.Bytes()
}

func (a *failingArena) Grow(n int) error {
	if a.grows >= a.failAfter {
		return membuf.ErrLimit
	}
	a.grows++
	return a.buf.Grow(n)
}
