package alloc

// Stats holds internal allocator statistics for testing and
// instrumentation.
type Stats struct {
	AllocCalls   int   // Total Alloc() calls
	FreeCalls    int   // Total Free() calls
	ReallocCalls int   // Total Realloc() calls
	GrowCalls    int   // Number of arena extensions
	GrowBytes    int64 // Total bytes added via growth

	SplitCount       int // Number of block splits during placement
	CoalesceForward  int // Merges with the following block only
	CoalesceBackward int // Merges with the preceding block only
	CoalesceBoth     int // Three-way merges

	BytesAllocated int64 // Total bytes handed out (including overhead)
	BytesFreed     int64 // Total bytes released (including overhead)
}

// Stats returns a copy of the current counters.
func (h *Heap) Stats() Stats {
	return h.stats
}
