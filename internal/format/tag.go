package format

// Boundary tags pack a block's total size and its allocation state into a
// single word, stored once at the block's start (header) and mirrored at
// its end (footer). Header and footer of a valid block are byte-identical;
// the footer exists solely so the block before a given address can be
// sized in O(1) during coalescing.

// PackTag packs a size and allocated flag into one tag word.
// The size must be a multiple of Alignment; its low bits carry the flag.
func PackTag(size int, allocated bool) uint64 {
	tag := uint64(size)
	if allocated {
		tag |= AllocatedBit
	}
	return tag
}

// TagSize returns the block size encoded in a tag word.
func TagSize(tag uint64) int {
	return int(tag & SizeMask)
}

// TagAllocated reports whether the tag word marks the block allocated.
func TagAllocated(tag uint64) bool {
	return tag&AllocatedBit != 0
}

// WriteTag encodes size and allocated into the word at off.
func WriteTag(b []byte, off, size int, allocated bool) {
	PutU64(b, off, PackTag(size, allocated))
}

// ReadTag reads the raw tag word at off.
func ReadTag(b []byte, off int) uint64 {
	return ReadU64(b, off)
}
