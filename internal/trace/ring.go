package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory. It is dumped when a
// command fails or panics, so the trace of a bad run survives without a
// trace file.
type RingTracer struct {
	mu     sync.Mutex
	buf    []Event
	total  uint64 // всего записано; позиция = total % len(buf)
	level  Level
	active map[uint64]Event // открытые спаны по id
}

// NewRingTracer creates a RingTracer holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{
		buf:    make([]Event, capacity),
		level:  level,
		active: make(map[uint64]Event),
	}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf[t.total%uint64(len(t.buf))] = *ev
	t.total++

	switch ev.Kind {
	case KindSpanBegin:
		t.active[ev.SpanID] = *ev
	case KindSpanEnd:
		delete(t.active, ev.SpanID)
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	return t.Tail(0)
}

// Tail returns the last n stored events, oldest first. n <= 0 means all.
func (t *RingTracer) Tail(n int) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	held := t.total
	if size := uint64(len(t.buf)); held > size {
		held = size
	}
	if n > 0 && uint64(n) < held {
		held = uint64(n)
	}
	out := make([]Event, 0, held)
	for i := t.total - held; i < t.total; i++ {
		out = append(out, t.buf[i%uint64(len(t.buf))])
	}
	return out
}

// InFlight returns the begin events of spans that have not ended, ordered
// by sequence. After a panic these name the documents being worked on.
func (t *RingTracer) InFlight() []Event {
	t.mu.Lock()
	out := make([]Event, 0, len(t.active))
	for _, ev := range t.active {
		out = append(out, ev)
	}
	t.mu.Unlock()

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Seq < out[j-1].Seq; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Dropped returns how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if size := uint64(len(t.buf)); t.total > size {
		return t.total - size
	}
	return 0
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	return writeEvents(w, t.Snapshot(), format)
}

func writeEvents(w io.Writer, events []Event, format Format) error {
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
