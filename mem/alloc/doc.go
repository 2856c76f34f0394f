// Package alloc provides the pluggable allocator abstraction used by every
// collection in memkit.
//
// # Overview
//
// An Allocator hands out raw byte blocks. Collections never call make()
// directly for their backing stores; they delegate to the allocator they were
// constructed with, or to the process-wide default when none is supplied.
//
// # Allocator Interface
//
//   - Alloc(size): uninitialized block of size bytes
//   - AllocZeroed(size): zero-filled block of size bytes
//   - Realloc(&block, newSize): resize, preserving min(old, new) bytes
//   - Free(&block): release the block and set it to nil
//
// Realloc offers the strong guarantee: on error the original block is left
// valid and unchanged. Zero-size requests yield a nil block and no error, and
// freeing a nil block is a no-op.
//
// # Implementations
//
// Heap: the process default, backed by the Go heap.
//
// Descriptor: a capability record of four functions bound to an opaque owner
// handle, for callers that want a collection to delegate to its owner.
//
// Tracking: an instrumented wrapper that counts operations, tracks live blocks
// by address, detects double and foreign frees, and keeps a bounded event
// history.
//
// Limited: a wrapper that enforces a byte budget. Useful for exercising
// allocation failure paths.
//
// Mmap: anonymous page mappings outside the Go heap (unix only; other
// platforms fall back to Heap). Blocks returned by Mmap must not hold Go
// pointers.
//
// # Usage Example
//
//	tr := alloc.NewTracking(alloc.Default(), 64)
//	v, err := vec.New(tr, 4)
//	if err != nil {
//	    return err
//	}
//	defer v.Free()
//
//	// ...
//	if tr.Stats().LiveBlocks != 0 {
//	    // leak
//	}
//
// # Thread Safety
//
// Heap and Mmap are safe for concurrent use. Tracking and Limited are not;
// callers must synchronize access externally.
package alloc
