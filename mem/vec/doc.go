// Package vec implements Vector, an owning, growable array of elements whose
// size is fixed at construction and known only at run time.
//
// # Ownership
//
// A Vector exclusively owns one block obtained from its allocator. Free
// returns it. Views and slices handed out by Get, Pop, Slice or Storage alias
// that block and are invalidated by any call that may reallocate: Push,
// Insert, Resize, Reserve, Shrink, Extend and Free. With the Go heap a stale
// view silently reads old memory; with alloc.Mmap it faults.
//
// # Growth
//
// When a push or insert finds the vector full, capacity becomes
// max(4, 2*capacity, required). Resize and Reserve grow to exactly the
// requested capacity. Shrink releases capacity down to Len.
//
// # Failure
//
// Every operation that may reallocate returns an error on allocation failure
// and leaves length, capacity and contents as they were.
//
// # Thread Safety
//
// Vectors are not safe for concurrent use.
package vec
