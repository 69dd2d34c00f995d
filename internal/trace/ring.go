package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory. After a file runs
// out of passes its events are dumped to show what the last passes did.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	n     int
	level Level
}

// NewRingTracer keeps up to capacity events, DefaultRingSize when
// capacity is not positive.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.records(ev) {
		return
	}
	t.mu.Lock()
	t.buf[t.next] = *ev
	t.next = (t.next + 1) % len(t.buf)
	t.n = min(t.n+1, len(t.buf))
	t.mu.Unlock()
}

// Events returns the stored events oldest first. A non-empty file keeps
// only the events of that input.
func (t *RingTracer) Events(file string) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.n)
	start := (t.next - t.n + len(t.buf)) % len(t.buf)
	for i := range t.n {
		ev := t.buf[(start+i)%len(t.buf)]
		if file == "" || ev.File == file {
			out = append(out, ev)
		}
	}
	return out
}

// Dump writes Events(file) to w.
func (t *RingTracer) Dump(w io.Writer, format Format, file string) error {
	for _, ev := range t.Events(file) {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
