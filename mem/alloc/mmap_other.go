//go:build !unix

package alloc

// NewMmap returns a Heap allocator on platforms without anonymous mmap support.
func NewMmap() Allocator {
	return &Heap{}
}
