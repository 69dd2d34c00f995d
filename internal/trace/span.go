package trace

import (
	"path/filepath"
	"sync/atomic"
	"time"
)

var (
	seq   atomic.Uint64
	spans atomic.Uint64
)

func nextSeq() uint64 { return seq.Add(1) }

// Span is one open region of a conversion: a file, an engine run, a phase
// or a pass. Children inherit the file of their parent.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	file    string
	started time.Time
	extra   map[string]string
}

// BeginFile opens the root span of one input's conversion.
func BeginFile(t Tracer, path string) *Span {
	return begin(t, ScopeDriver, "file:"+filepath.Base(path), nil, path)
}

// Begin opens a span under parent, which may be nil.
func Begin(t Tracer, scope Scope, name string, parent *Span) *Span {
	return begin(t, scope, name, parent, parent.File())
}

func begin(t Tracer, scope Scope, name string, parent *Span, file string) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		// A filtered span stays transparent: its children hang off the
		// nearest recorded ancestor and keep the file.
		return &Span{tracer: Nop, id: parent.ID(), file: file}
	}
	s := &Span{
		tracer:  t,
		id:      spans.Add(1),
		parent:  parent.ID(),
		scope:   scope,
		name:    name,
		file:    file,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		File:     s.file,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the span's end event and returns how long it was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil || !s.tracer.Enabled() {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// WithExtra records a key-value pair for the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || !s.tracer.Enabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for nil.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// File returns the input the span belongs to.
func (s *Span) File() string {
	if s == nil {
		return ""
	}
	return s.file
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, parent *Span, name, detail string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent.ID(),
		File:     parent.File(),
		Name:     name,
		Detail:   detail,
	})
}
