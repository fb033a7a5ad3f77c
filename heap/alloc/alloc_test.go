package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/membuf"
	"github.com/joshuapare/heapkit/internal/format"
)

func Test_Alloc_ZeroSize_IsNoOp(t *testing.T) {
	h := newTestHeap(t)

	ref, buf, err := h.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, NilRef, ref)
	require.Nil(t, buf)
	require.True(t, h.Check())
}

func Test_Alloc_NegativeSize_Rejected(t *testing.T) {
	h := newTestHeap(t)

	_, _, err := h.Alloc(-1)
	require.ErrorIs(t, err, ErrBadSize)
}

func Test_Alloc_ReturnsAlignedRefs(t *testing.T) {
	h := newTestHeap(t)

	for _, n := range []int{1, 7, 8, 10, 100, 1000, 4096} {
		ref, buf, err := h.Alloc(n)
		require.NoError(t, err, "Alloc(%d)", n)
		require.Zero(t, ref%format.Alignment, "Alloc(%d) ref %#x not 8-byte aligned", n, ref)
		require.GreaterOrEqual(t, len(buf), n, "Alloc(%d) payload too small", n)
		require.True(t, h.Check(), "heap inconsistent after Alloc(%d)", n)
	}
}

func Test_Alloc_UsableSizeCoversRequest(t *testing.T) {
	h := newTestHeap(t)

	for _, n := range []int{1, 24, 33, 512} {
		ref, _, err := h.Alloc(n)
		require.NoError(t, err)

		usable, err := h.UsableSize(ref)
		require.NoError(t, err)
		require.GreaterOrEqual(t, usable, n)
	}
}

func Test_Alloc_BlocksDoNotOverlap(t *testing.T) {
	h := newTestHeap(t)

	refA, bufA, err := h.Alloc(64)
	require.NoError(t, err)
	refB, bufB, err := h.Alloc(64)
	require.NoError(t, err)
	require.NotEqual(t, refA, refB)

	for i := range bufA {
		bufA[i] = 0xAA
	}
	for i := range bufB {
		bufB[i] = 0xBB
	}

	// Neither write may bleed into the other block.
	gotA, err := h.Bytes(refA)
	require.NoError(t, err)
	for i, v := range gotA {
		require.Equal(t, byte(0xAA), v, "block A corrupted at offset %d", i)
	}
	gotB, err := h.Bytes(refB)
	require.NoError(t, err)
	for i, v := range gotB {
		require.Equal(t, byte(0xBB), v, "block B corrupted at offset %d", i)
	}
}

func Test_Alloc_SplitsLargeBlock(t *testing.T) {
	h := newTestHeap(t)

	// The seeded chunk is far larger than this request, so placement must
	// split and return the remainder to the free list.
	_, _, err := h.Alloc(64)
	require.NoError(t, err)

	require.Positive(t, h.Stats().SplitCount)
	free := freeBlocks(t, h)
	require.Len(t, free, 1, "split remainder should be the only free block")
	require.True(t, h.Check())
}

func Test_Alloc_TakesWholeBlockWhenRemainderTooSmall(t *testing.T) {
	h := newTestHeap(t, WithChunkSize(format.MinBlockSize))

	// Consume the seeded chunk exactly; the leftover (zero) cannot form a
	// block, so no split happens.
	ref, _, err := h.Alloc(format.MinBlockSize - format.BlockOverhead)
	require.NoError(t, err)

	usable, err := h.UsableSize(ref)
	require.NoError(t, err)
	require.Equal(t, format.MinBlockSize-format.BlockOverhead, usable)
	require.Empty(t, freeBlocks(t, h))
	require.True(t, h.Check())
}

func Test_Alloc_GrowsWhenNoFit(t *testing.T) {
	h := newTestHeap(t, WithChunkSize(256))
	baseline := h.Stats().GrowCalls

	var grown []int
	h.onGrow = func(n int) { grown = append(grown, n) }

	// Far larger than the seeded chunk: growth must be sized to the
	// request, not the default chunk.
	ref, buf, err := h.Alloc(8192)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(buf), 8192)
	require.Equal(t, baseline+1, h.Stats().GrowCalls)
	require.Len(t, grown, 1)
	require.GreaterOrEqual(t, grown[0], 8192)
	require.True(t, h.Check())

	require.NoError(t, h.Free(ref))
	require.True(t, h.Check())
}

func Test_Alloc_OutOfMemory(t *testing.T) {
	// Two grows succeed (bootstrap + seed chunk), then the arena is dry.
	a := newFailingArena(2)
	h, err := New(a, WithChunkSize(128))
	require.NoError(t, err)

	// Exhaust the seeded chunk.
	_, _, err = h.Alloc(128 - format.BlockOverhead)
	require.NoError(t, err)

	_, _, err = h.Alloc(64)
	require.ErrorIs(t, err, ErrNoSpace)

	// A failed allocation must leave the heap consistent.
	require.True(t, h.Check())
}

func Test_Alloc_FragmentationTriggeredGrowth(t *testing.T) {
	h := newTestHeap(t, WithChunkSize(512))

	// Carve the heap into free pockets separated by allocated pinning
	// blocks so total free space is large but no single block is.
	var pins []Ref
	var holes []Ref
	for n := 0; n < 4; n++ {
		hole, _, err := h.Alloc(96)
		require.NoError(t, err)
		holes = append(holes, hole)

		pin, _, err := h.Alloc(32)
		require.NoError(t, err)
		pins = append(pins, pin)
	}
	for _, hole := range holes {
		require.NoError(t, h.Free(hole))
	}
	require.True(t, h.Check())

	// Larger than any single hole; must be satisfied by growth and the
	// returned block must actually be big enough.
	ref, buf, err := h.Alloc(400)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(buf), 400)

	usable, err := h.UsableSize(ref)
	require.NoError(t, err)
	require.GreaterOrEqual(t, usable, 400)
	require.True(t, h.Check())

	for _, pin := range pins {
		require.NoError(t, h.Free(pin))
	}
	require.True(t, h.Check())
}

func Test_Alloc_FirstFitScansFromHead(t *testing.T) {
	h := newTestHeap(t, WithChunkSize(4096))

	// Three free pockets of ascending size, separated by pins.
	small, _, err := h.Alloc(64)
	require.NoError(t, err)
	_, _, err = h.Alloc(32)
	require.NoError(t, err)
	large, _, err := h.Alloc(256)
	require.NoError(t, err)
	_, _, err = h.Alloc(32)
	require.NoError(t, err)

	require.NoError(t, h.Free(small))
	require.NoError(t, h.Free(large))

	// The head of the list is the most recently freed block. A request
	// both pockets could serve must come from the large one.
	ref, _, err := h.Alloc(64)
	require.NoError(t, err)
	require.Equal(t, large, ref, "first fit should take the list head")
	require.True(t, h.Check())
}

func Test_Scenario_AllocFreeAllocSequence(t *testing.T) {
	h := newTestHeap(t)

	refA, bufA, err := h.Alloc(10)
	require.NoError(t, err)
	require.Zero(t, refA%format.Alignment)
	require.GreaterOrEqual(t, len(bufA), 10)
	require.True(t, h.Check())

	refB, _, err := h.Alloc(10)
	require.NoError(t, err)
	require.NotEqual(t, refA, refB)
	require.True(t, h.Check())

	require.NoError(t, h.Free(refA))
	require.True(t, h.Check())

	refC, _, err := h.Alloc(10)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, refC)
	require.True(t, h.Check())
}

func Test_New_ChunkTooSmall(t *testing.T) {
	_, err := New(membuf.NewBuffer(0), WithChunkSize(8))
	require.ErrorIs(t, err, ErrInit)
}

func Test_New_ArenaMustBeEmpty(t *testing.T) {
	b := membuf.NewBuffer(0)
	require.NoError(t, b.Grow(64))

	_, err := New(b)
	require.ErrorIs(t, err, ErrInit)
}

func Test_New_InitialGrowthFailure(t *testing.T) {
	_, err := New(newFailingArena(0))
	require.ErrorIs(t, err, ErrInit)

	// Bootstrap succeeds but the seed chunk cannot be obtained.
	_, err = New(newFailingArena(1))
	require.ErrorIs(t, err, ErrInit)
}
