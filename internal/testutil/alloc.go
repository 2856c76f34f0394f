// Package testutil holds helpers shared by memkit tests.
package testutil

import (
	"testing"

	"github.com/joshuapare/memkit/mem/alloc"
)

// HistoryCap is the number of allocator events kept by NewTracker.
const HistoryCap = 64

// Reporter is the subset of testing.TB used by AssertNoLeaks.
type Reporter interface {
	Helper()
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
}

// NewTracker returns a Tracking allocator over the default heap and fails the
// test at cleanup if any block is still live or any free was rejected.
//
// Example:
//
//	a := testutil.NewTracker(t)
//	v, err := vec.New(a, 4)
//	...
//	require.NoError(t, v.Free())
func NewTracker(t testing.TB) *alloc.Tracking {
	t.Helper()
	return NewTrackerOver(t, alloc.Default())
}

// NewTrackerOver is NewTracker over a caller-supplied allocator.
func NewTrackerOver(t testing.TB, inner alloc.Allocator) *alloc.Tracking {
	t.Helper()
	tr := alloc.NewTracking(inner, HistoryCap)
	t.Cleanup(func() {
		AssertNoLeaks(t, tr)
	})
	return tr
}

// AssertNoLeaks reports live blocks and rejected frees recorded by tr.
func AssertNoLeaks(r Reporter, tr *alloc.Tracking) {
	r.Helper()
	st := tr.Stats()
	if st.LiveBlocks != 0 {
		r.Errorf("leaked %d blocks (%d bytes)", st.LiveBlocks, st.LiveBytes)
		for _, ev := range tr.History() {
			r.Logf("  %s size=%d addr=%#x", ev.Op, ev.Size, ev.Addr)
		}
	}
	if st.Violations != 0 {
		r.Errorf("%d rejected frees", st.Violations)
	}
}
