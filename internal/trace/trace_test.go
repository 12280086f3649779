package trace

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelCommand, ScopeCommand, true},
		{LevelCommand, ScopeBatch, false},
		{LevelBatch, ScopeBatch, true},
		{LevelBatch, ScopeDocument, false},
		{LevelDocument, ScopeDocument, true},
		{LevelDocument, ScopeCommand, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String()+"/"+tt.scope.String(), func(t *testing.T) {
			if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
				t.Fatalf("ShouldEmit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "Batch": LevelBatch, "DOCUMENT": LevelDocument} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("phase"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "text": FormatText, "ndjson": FormatNDJSON, "LOG": FormatLog} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestFormatTextShowsDocument(t *testing.T) {
	ev := &Event{Seq: 7, Kind: KindSpanEnd, ParentID: 1, Doc: "docs/a.em", Name: "parse", Detail: "ok",
		Extra: map[string]string{"b": "2", "a": "1"}}
	got := string(FormatEvent(ev, FormatText))
	want := "#7" + strings.Repeat(" ", 8) + "← parse [docs/a.em] (ok) {a=1, b=2}\n"
	if got != want {
		t.Fatalf("formatText = %q, want %q", got, want)
	}
}

func TestSpansNestThroughContext(t *testing.T) {
	ring := NewRingTracer(16, LevelDocument)
	ctx := WithTracer(context.Background(), ring)

	cmd, ctx := Start(ctx, ScopeCommand, "em check")
	if ParentID(ctx) != cmd.ID() || cmd.ID() == 0 {
		t.Fatalf("context does not carry the command span")
	}
	doc, docCtx := StartDoc(ctx, "parse", "a.em")
	Mark(docCtx, ScopeDocument, "cache-hit", "a.em")
	doc.Set("logs", "2").End(errors.New("boom"))
	cmd.End(nil)

	evs := ring.Snapshot()
	if len(evs) != 5 {
		t.Fatalf("got %d events, want 5: %+v", len(evs), evs)
	}
	begin, mark, end := evs[1], evs[2], evs[3]
	if begin.ParentID != cmd.ID() || begin.Doc != "a.em" || begin.Scope != ScopeDocument {
		t.Fatalf("document begin = %+v", begin)
	}
	if mark.Kind != KindPoint || mark.ParentID != doc.ID() {
		t.Fatalf("mark = %+v", mark)
	}
	if end.Detail != "boom" || end.Extra["logs"] != "2" {
		t.Fatalf("document end = %+v", end)
	}
}

func TestStreamTracerStampsRunID(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelBatch, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	runID := RunID(tr)
	if _, err := uuid.Parse(runID); err != nil {
		t.Fatalf("run id %q is not a uuid: %v", runID, err)
	}

	ctx := WithTracer(context.Background(), tr)
	span, ctx := Start(ctx, ScopeBatch, "parse-files")
	hidden, _ := StartDoc(ctx, "parse", "a.em") // документы ниже уровня batch
	hidden.End(nil)
	span.Set("files", "1").End(nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d events, want 2:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != "end" || ev.Name != "parse-files" || ev.RunID != runID || ev.Extra["files"] != "1" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestRingTail(t *testing.T) {
	r := NewRingTracer(3, LevelDocument)
	for _, name := range []string{"a", "b", "c", "d"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeBatch, Name: name})
	}
	names := func(evs []Event) string {
		var out []string
		for _, ev := range evs {
			out = append(out, ev.Name)
		}
		return strings.Join(out, "")
	}

	tests := []struct {
		n    int
		want string
	}{
		{0, "bcd"},
		{2, "cd"},
		{10, "bcd"},
	}
	for _, tt := range tests {
		if got := names(r.Tail(tt.n)); got != tt.want {
			t.Errorf("Tail(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
	if r.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", r.Dropped())
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestRingInFlight(t *testing.T) {
	r := NewRingTracer(2, LevelDocument)
	ctx := WithTracer(context.Background(), r)
	batch, ctx := Start(ctx, ScopeBatch, "parse-files")
	a, _ := StartDoc(ctx, "parse", "a.em")
	b, _ := StartDoc(ctx, "parse", "b.em")
	a.End(nil)

	// кольцо уже перезаписано, но открытые спаны помнятся
	open := r.InFlight()
	if len(open) != 2 || open[0].SpanID != batch.ID() || open[1].Doc != "b.em" {
		t.Fatalf("in flight = %+v", open)
	}
	b.End(nil)
	batch.End(nil)
	if open := r.InFlight(); len(open) != 0 {
		t.Fatalf("in flight after end = %+v", open)
	}
}

func TestRingLookup(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelBatch, Mode: ModeBoth, Output: &buf, RunID: "run-1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Mark(WithTracer(context.Background(), tr), ScopeCommand, "start", "")
	ring := Ring(tr)
	if ring == nil {
		t.Fatalf("Ring() = nil for ModeBoth")
	}
	snap := ring.Snapshot()
	if len(snap) != 1 || snap[0].RunID != "run-1" {
		t.Fatalf("ring snapshot = %+v", snap)
	}
	if !strings.Contains(buf.String(), "start") {
		t.Fatalf("stream sink missed the event: %q", buf.String())
	}
	if Ring(Nop) != nil {
		t.Fatalf("Nop has no ring")
	}
}

func TestLogTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := NewLogTracer(&buf, LevelDocument)
	start := time.Now()
	tr.Emit(&Event{Time: start, Kind: KindSpanBegin, Scope: ScopeDocument, SpanID: 9, Doc: "a.em", Name: "lex"})
	tr.Emit(&Event{Time: start.Add(time.Millisecond), Kind: KindSpanEnd, Scope: ScopeDocument, SpanID: 9, Doc: "a.em", Name: "lex", RunID: "r"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records:\n%s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["message"] != "lex" || rec["kind"] != "end" || rec["run_id"] != "r" || rec["doc"] != "a.em" {
		t.Fatalf("record = %v", rec)
	}
	if _, ok := rec["elapsed"]; !ok {
		t.Fatalf("span end must carry elapsed: %v", rec)
	}
}

func TestBeatIgnoresLevel(t *testing.T) {
	r := NewRingTracer(4, LevelCommand)
	ctx := WithTracer(context.Background(), r)
	Mark(ctx, ScopeBatch, "watch-batch", "a.em")
	Beat(ctx, "watch", "pending=0")

	evs := r.Snapshot()
	if len(evs) != 1 || evs[0].Kind != KindHeartbeat || evs[0].Detail != "pending=0" {
		t.Fatalf("events = %+v", evs)
	}
}

func TestContextDefaults(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	ctx := WithTracer(context.Background(), nil)
	if FromContext(ctx) != Nop {
		t.Fatalf("nil tracer must be replaced by Nop")
	}
	if tr, err := New(Config{Level: LevelOff}); err != nil || tr != Nop {
		t.Fatalf("LevelOff must yield Nop, got %v, %v", tr, err)
	}

	span, got := Start(ctx, ScopeCommand, "em")
	if got != ctx || span.ID() != 0 || span.Set("k", "v").End(nil) != 0 {
		t.Fatalf("span without a tracer must be inert")
	}
}
