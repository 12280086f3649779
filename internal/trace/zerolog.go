package trace

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogTracer writes events as zerolog records. Span ends carry their
// duration; heartbeats are logged at debug level.
type LogTracer struct {
	logger zerolog.Logger
	level  Level
	w      io.Writer
	begins map[uint64]time.Time
	mu     sync.Mutex // защищает begins
}

// NewLogTracer creates a LogTracer writing JSON records to w.
func NewLogTracer(w io.Writer, level Level) *LogTracer {
	logger := zerolog.New(w).With().Timestamp().Str("component", "emblem").Logger()
	return &LogTracer{
		logger: logger,
		level:  level,
		w:      w,
		begins: make(map[uint64]time.Time),
	}
}

// Emit writes ev as one log record.
func (t *LogTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}

	var rec *zerolog.Event
	if ev.Kind == KindHeartbeat {
		rec = t.logger.Debug()
	} else {
		rec = t.logger.Info()
	}
	rec = rec.
		Uint64("seq", ev.Seq).
		Str("kind", ev.Kind.String()).
		Str("scope", ev.Scope.String())
	if ev.RunID != "" {
		rec = rec.Str("run_id", ev.RunID)
	}
	if ev.SpanID != 0 {
		rec = rec.Uint64("span_id", ev.SpanID)
	}
	if ev.ParentID != 0 {
		rec = rec.Uint64("parent_id", ev.ParentID)
	}
	if ev.Doc != "" {
		rec = rec.Str("doc", ev.Doc)
	}
	if ev.Detail != "" {
		rec = rec.Str("detail", ev.Detail)
	}
	for k, v := range ev.Extra {
		rec = rec.Str(k, v)
	}

	t.mu.Lock()
	switch ev.Kind {
	case KindSpanBegin:
		t.begins[ev.SpanID] = ev.Time
	case KindSpanEnd:
		if start, ok := t.begins[ev.SpanID]; ok {
			rec = rec.Dur("elapsed", ev.Time.Sub(start))
			delete(t.begins, ev.SpanID)
		}
	}
	t.mu.Unlock()

	rec.Msg(ev.Name)
}

// Flush calls the writer's Flush method, if it has one.
func (t *LogTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *LogTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Level returns the current tracing level.
func (t *LogTracer) Level() Level { return t.level }

// Enabled returns true if tracing is active.
func (t *LogTracer) Enabled() bool { return t.level > LevelOff }
