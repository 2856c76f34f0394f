// Package comparison provides benchmarks comparing memkit collections with
// Go's built-in slices and maps.
package comparison

import (
	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/mem/view"
)

// BenchmarkSizes defines the element counts used across benchmarks.
var BenchmarkSizes = []struct {
	Name  string // Short name for benchmark output
	Count int    // Number of elements
}{
	{Name: "small", Count: 16},
	{Name: "medium", Count: 1024},
	{Name: "large", Count: 65536},
}

// Prevent compiler optimizations from eliminating benchmark code.
var (
	benchView   view.View
	benchUint32 uint32
	benchInt    int
	benchBool   bool
	benchErr    error
)

// elem32 returns a 4-byte element view holding v.
func elem32(v uint32) view.View {
	b := make([]byte, 4)
	buf.PutUintLE(b, uint64(v))
	return view.New(b, 4)
}
