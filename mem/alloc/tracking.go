package alloc

import (
	"fmt"

	"github.com/eapache/queue"

	"github.com/joshuapare/memkit/internal/logger"
)

// Op identifies an allocator operation recorded by Tracking.
type Op uint8

const (
	OpAlloc Op = iota + 1
	OpAllocZeroed
	OpRealloc
	OpFree
)

func (o Op) String() string {
	switch o {
	case OpAlloc:
		return "alloc"
	case OpAllocZeroed:
		return "alloc_zeroed"
	case OpRealloc:
		return "realloc"
	case OpFree:
		return "free"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Event is one recorded allocator call.
type Event struct {
	Op      Op
	Addr    uintptr // resulting block address (old address for Free)
	OldAddr uintptr // Realloc only
	Size    int     // resulting size (freed size for Free)
	OldSize int     // Realloc only
	Err     error
}

// Stats is a snapshot of Tracking counters.
type Stats struct {
	Allocs     int `json:"allocs"`
	Frees      int `json:"frees"`
	Reallocs   int `json:"reallocs"`
	Moves      int `json:"moves"` // reallocs that changed the block address
	Failures   int `json:"failures"`
	Violations int `json:"violations"` // double or foreign frees
	LiveBlocks int `json:"live_blocks"`
	LiveBytes  int `json:"live_bytes"`
	PeakBytes  int `json:"peak_bytes"`
}

// Tracking wraps an Allocator and records every call. It knows each live
// block by address, so it can reject double frees and frees of blocks it
// never handed out before they reach the inner allocator.
type Tracking struct {
	inner Allocator

	live  map[uintptr]int
	freed map[uintptr]struct{}
	stats Stats

	// history holds the most recent events, oldest first.
	history    *queue.Queue
	historyCap int
}

// NewTracking wraps inner (nil means the default allocator). historyCap bounds
// the number of events kept; zero disables history.
func NewTracking(inner Allocator, historyCap int) *Tracking {
	if historyCap < 0 {
		historyCap = 0
	}
	return &Tracking{
		inner:      Or(inner),
		live:       make(map[uintptr]int),
		freed:      make(map[uintptr]struct{}),
		history:    queue.New(),
		historyCap: historyCap,
	}
}

// Stats returns a copy of the current counters.
func (t *Tracking) Stats() Stats {
	return t.stats
}

// LiveSize returns the recorded size of the live block at addr.
func (t *Tracking) LiveSize(addr uintptr) (int, bool) {
	n, ok := t.live[addr]
	return n, ok
}

// History returns the recorded events, oldest first.
func (t *Tracking) History() []Event {
	out := make([]Event, t.history.Length())
	for i := range out {
		out[i] = t.history.Get(i).(Event)
	}
	return out
}

func (t *Tracking) record(ev Event) {
	if ev.Err != nil {
		t.stats.Failures++
	}
	if t.historyCap == 0 {
		return
	}
	for t.history.Length() >= t.historyCap {
		t.history.Remove()
	}
	t.history.Add(ev)
}

func (t *Tracking) addLive(addr uintptr, size int) {
	if addr == 0 {
		return
	}
	t.live[addr] = size
	delete(t.freed, addr)
	t.stats.LiveBlocks++
	t.stats.LiveBytes += size
	if t.stats.LiveBytes > t.stats.PeakBytes {
		t.stats.PeakBytes = t.stats.LiveBytes
	}
}

func (t *Tracking) dropLive(addr uintptr) {
	size := t.live[addr]
	delete(t.live, addr)
	t.freed[addr] = struct{}{}
	t.stats.LiveBlocks--
	t.stats.LiveBytes -= size
}

// violation classifies a block that is not live.
func (t *Tracking) violation(op Op, addr uintptr) error {
	t.stats.Violations++
	if _, ok := t.freed[addr]; ok {
		logger.L.Warn("alloc: double free", "op", op.String(), "addr", addr)
		return fmt.Errorf("%w: %#x", ErrDoubleFree, addr)
	}
	logger.L.Warn("alloc: foreign block", "op", op.String(), "addr", addr)
	return fmt.Errorf("%w: %#x", ErrUnknownBlock, addr)
}

func (t *Tracking) alloc(op Op, size int) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if op == OpAllocZeroed {
		b, err = t.inner.AllocZeroed(size)
	} else {
		b, err = t.inner.Alloc(size)
	}
	ev := Event{Op: op, Size: size, Err: err}
	if err == nil {
		t.stats.Allocs++
		ev.Addr = Addr(b)
		t.addLive(ev.Addr, len(b))
	}
	t.record(ev)
	return b, err
}

// Alloc forwards to the inner allocator and records the new block.
func (t *Tracking) Alloc(size int) ([]byte, error) {
	return t.alloc(OpAlloc, size)
}

// AllocZeroed forwards to the inner allocator and records the new block.
func (t *Tracking) AllocZeroed(size int) ([]byte, error) {
	return t.alloc(OpAllocZeroed, size)
}

// Realloc forwards to the inner allocator. A non-nil block that is not live
// is rejected without calling the inner allocator.
func (t *Tracking) Realloc(block *[]byte, newSize int) error {
	if block == nil {
		return ErrNilBlock
	}
	oldAddr := Addr(*block)
	oldSize := len(*block)
	ev := Event{Op: OpRealloc, OldAddr: oldAddr, OldSize: oldSize, Size: newSize}
	if oldAddr != 0 {
		if _, ok := t.live[oldAddr]; !ok {
			ev.Err = t.violation(OpRealloc, oldAddr)
			t.record(ev)
			return ev.Err
		}
	}
	if err := t.inner.Realloc(block, newSize); err != nil {
		ev.Err = err
		t.record(ev)
		return err
	}
	t.stats.Reallocs++
	ev.Addr = Addr(*block)
	if ev.Addr != oldAddr {
		t.stats.Moves++
	}
	if oldAddr != 0 {
		t.dropLive(oldAddr)
	}
	t.addLive(ev.Addr, len(*block))
	t.record(ev)
	return nil
}

// Free forwards to the inner allocator. Double frees and foreign blocks are
// reported as errors and never reach the inner allocator.
func (t *Tracking) Free(block *[]byte) error {
	if block == nil {
		return ErrNilBlock
	}
	addr := Addr(*block)
	if addr == 0 {
		return nil
	}
	ev := Event{Op: OpFree, Addr: addr, Size: len(*block)}
	if _, ok := t.live[addr]; !ok {
		ev.Err = t.violation(OpFree, addr)
		t.record(ev)
		return ev.Err
	}
	if err := t.inner.Free(block); err != nil {
		ev.Err = err
		t.record(ev)
		return err
	}
	t.stats.Frees++
	t.dropLive(addr)
	t.record(ev)
	return nil
}
