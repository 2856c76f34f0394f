package comparison

import (
	"testing"

	"github.com/joshuapare/memkit/mem/rc"
	"github.com/joshuapare/memkit/mem/view"
)

// BenchmarkRcShare measures sharing and releasing a boxed value.
func BenchmarkRcShare_Memkit(b *testing.B) {
	for _, sz := range BenchmarkSizes[:2] {
		b.Run(sz.Name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				r, err := rc.NewValue(nil, uint32(i))
				if err != nil {
					b.Fatalf("NewValue failed: %v", err)
				}
				shares := make([]*rc.Rc, 0, sz.Count)
				for j := 0; j < sz.Count; j++ {
					s, err := r.Share()
					if err != nil {
						b.Fatalf("Share failed: %v", err)
					}
					shares = append(shares, s)
				}
				benchUint32, _ = view.Load[uint32](r.Get())
				for _, s := range shares {
					_, benchErr = s.Free()
				}
				benchBool, benchErr = r.Free()
			}
		})
	}
}
