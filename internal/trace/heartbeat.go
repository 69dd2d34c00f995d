package trace

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// Heartbeat wraps a tracer and, every interval, emits where each running
// conversion is: its file, phase and pass. A file whose pass stays the
// same across several heartbeats is stuck in a gcc run.
type Heartbeat struct {
	next     Tracer
	interval time.Duration

	mu     sync.Mutex
	active map[string]*position

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// position is the deepest span seen so far for one file.
type position struct {
	root  uint64
	phase string
	pass  string
}

// NewHeartbeat starts beating into next. Close stops it.
func NewHeartbeat(next Tracer, interval time.Duration) *Heartbeat {
	h := &Heartbeat{
		next:     next,
		interval: interval,
		active:   make(map[string]*position),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer close(h.done)
	tick := time.NewTicker(h.interval)
	defer tick.Stop()
	for beat := 1; ; beat++ {
		select {
		case <-h.stop:
			return
		case now := <-tick.C:
			h.next.Emit(&Event{
				Time:   now,
				Seq:    nextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   fmt.Sprintf("heartbeat:%d", beat),
				Detail: h.Status(),
			})
		}
	}
}

// Emit tracks the file positions and forwards ev.
func (h *Heartbeat) Emit(ev *Event) {
	h.observe(ev)
	h.next.Emit(ev)
}

func (h *Heartbeat) observe(ev *Event) {
	if ev.File == "" || ev.Kind == KindPoint {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	pos := h.active[ev.File]
	switch {
	case pos == nil:
		if ev.Kind == KindSpanBegin {
			h.active[ev.File] = &position{root: ev.SpanID}
		}
	case ev.Kind == KindSpanEnd && ev.SpanID == pos.root:
		delete(h.active, ev.File)
	case ev.Kind == KindSpanBegin && ev.Scope == ScopePhase:
		pos.phase, pos.pass = ev.Name, ""
	case ev.Kind == KindSpanBegin && ev.Scope == ScopePass:
		pos.pass = ev.Name
	}
}

// Status lists the running conversions by file, "idle" when there are
// none.
func (h *Heartbeat) Status() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.active) == 0 {
		return "idle"
	}
	var parts []string
	for _, file := range slices.Sorted(maps.Keys(h.active)) {
		pos := h.active[file]
		fields := []string{filepath.Base(file)}
		for _, f := range []string{pos.phase, pos.pass} {
			if f != "" {
				fields = append(fields, f)
			}
		}
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.Join(parts, "; ")
}

func (h *Heartbeat) Flush() error { return h.next.Flush() }

// Close stops the beat and closes the wrapped tracer. It is safe to call
// more than once.
func (h *Heartbeat) Close() error {
	stopped := false
	h.once.Do(func() {
		close(h.stop)
		<-h.done
		stopped = true
	})
	if !stopped {
		return nil
	}
	return h.next.Close()
}

func (h *Heartbeat) Level() Level  { return h.next.Level() }
func (h *Heartbeat) Enabled() bool { return h.next.Enabled() }
