package alloc

import "errors"

var (
	// ErrInit indicates the initial heap bootstrap failed.
	ErrInit = errors.New("alloc: heap initialization failed")

	// ErrNoSpace indicates no free block was large enough and growing the arena failed.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrGrowFail indicates the arena refused to extend the heap.
	ErrGrowFail = errors.New("alloc: arena grow failed")

	// ErrBadRef indicates a reference that does not name a plausible block.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrNotAllocated indicates an operation on a block that is not marked allocated.
	ErrNotAllocated = errors.New("alloc: block not allocated")

	// ErrBadSize indicates a negative allocation size.
	ErrBadSize = errors.New("alloc: invalid allocation size")
)
