package alloc

import (
	"fmt"
	"os"
)

// Runtime debug flag for allocation tracing - controlled by the
// HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// debugLogf prints allocation trace messages to stderr when enabled.
func debugLogf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[ALLOC] "+format+"\n", args...)
}
