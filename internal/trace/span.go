package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seq.Add(1) }

// Span is one timed operation. A span started through a context becomes the
// parent of spans started from the context Start returns.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	doc     string
	started time.Time
	extra   map[string]string
}

// Start opens a span under the span active in ctx. When the tracer does not
// record scope, the span is inert and ctx is returned unchanged.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	return start(ctx, scope, name, "")
}

// StartDoc opens a document-scope span for the document at path.
func StartDoc(ctx context.Context, name, path string) (*Span, context.Context) {
	return start(ctx, ScopeDocument, name, path)
}

func start(ctx context.Context, scope Scope, name, doc string) (*Span, context.Context) {
	b := bindingOf(ctx)
	if !b.tracer.Enabled() || !b.tracer.Level().ShouldEmit(scope) {
		return &Span{}, ctx
	}
	s := &Span{
		tracer:  b.tracer,
		id:      spanIDs.Add(1),
		parent:  b.span,
		scope:   scope,
		name:    name,
		doc:     doc,
		started: time.Now(),
	}
	s.emit(KindSpanBegin, s.started, "")
	return s, context.WithValue(ctx, ctxKey{}, binding{tracer: b.tracer, span: s.id})
}

// Set records a key-value pair reported with the end event.
func (s *Span) Set(key, value string) *Span {
	if s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// End closes the span. A non-nil err becomes the detail of the end event.
func (s *Span) End(err error) time.Duration {
	if s.tracer == nil {
		return 0
	}
	now := time.Now()
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	s.emit(KindSpanEnd, now, detail)
	return now.Sub(s.started)
}

// ID returns the span id, 0 for an inert span.
func (s *Span) ID() uint64 { return s.id }

func (s *Span) emit(kind Kind, at time.Time, detail string) {
	ev := &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Doc:      s.doc,
		Name:     s.name,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	s.tracer.Emit(ev)
}

// Mark records an instant event under the span active in ctx.
func Mark(ctx context.Context, scope Scope, name, detail string) {
	b := bindingOf(ctx)
	if !b.tracer.Enabled() || !b.tracer.Level().ShouldEmit(scope) {
		return
	}
	b.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: b.span,
		Name:     name,
		Detail:   detail,
	})
}
